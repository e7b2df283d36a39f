/*
Package fingerprint computes stable identifiers for Link sequences and the
CMs that produced them: a blake3 digest of the winning sequence (mirroring
poly's Blake3SequenceHash), and a structhash digest of a CM's state table,
used to tell whether two runs compared the same pair of models.

Neither fingerprint touches the DP hot path; both are computed strictly
before or after a dp.Compare call, from the driver's extended/hash output
path only.
*/
package fingerprint

import (
	"encoding/hex"
	"strings"

	"github.com/cnf/structhash"
	"lukechampine.com/blake3"

	"github.com/TimothyStiles/cmlink/bitscore"
	"github.com/TimothyStiles/cmlink/cm"
)

// structhashVersion pins the struct shape structhash.Hash walks; bump it if
// cm.State or cm.CM ever gain fields that should change the fingerprint.
const structhashVersion = 1

// Sequence returns the blake3-256 hex digest of seq, upper-cased first so
// that "acgu" and "ACGU" fingerprint identically.
func Sequence(seq string) string {
	sum := blake3.Sum256([]byte(strings.ToUpper(seq)))
	return hex.EncodeToString(sum[:])
}

// Model returns a structural hash of m's state table: same states, same
// transitions, same emissions, same local begin/end maps hash identically
// regardless of Name, giving the driver a stable "is this the same model"
// identifier across runs and across files with different names.
func Model(m *cm.CM) (string, error) {
	return structhash.Hash(struct {
		States     []cm.State
		LocalBegin map[cm.StateID]float64
		LocalEnd   map[cm.StateID]float64
	}{
		States:     m.States,
		LocalBegin: scoreMapToFloat(m.LocalBegin),
		LocalEnd:   scoreMapToFloat(m.LocalEnd),
	}, structhashVersion)
}

// scoreMapToFloat flattens a bitscore.Score map to a float64 map so
// structhash's reflection-based walk doesn't have to reach into Score's
// unexported fields.
func scoreMapToFloat(m map[cm.StateID]bitscore.Score) map[cm.StateID]float64 {
	out := make(map[cm.StateID]float64, len(m))
	for k, v := range m {
		out[k] = v.Value()
	}
	return out
}
