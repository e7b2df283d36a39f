/*
Package cmlink compares two Infernal-style Covariance Models and reports
their Link score: max over RNA sequences x of min(s1(x), s2(x)) under each
model's own CYK scoring, plus the sequence, secondary structure, and
traversal witnessing that score.

It is the driver layer over package dp: it selects (or composes) an algebra
from a CLI-style selector string, runs dp.Compare, and formats the root
co-optimum into the line cmd/cmlink prints.
*/
package cmlink
