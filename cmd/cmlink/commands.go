package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/TimothyStiles/cmlink"
	iocm "github.com/TimothyStiles/cmlink/io/cm"
)

// compareCommand parses the two model files named on the command line, runs
// cmlink.Compare under the requested mode, and writes the result to the
// app's writer (stdout in production, a spoofed buffer in tests).
func compareCommand(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("compare wants exactly 2 model file arguments, got %d", c.Args().Len())
	}
	path1, path2 := c.Args().Get(0), c.Args().Get(1)

	m1, err := loadModel(path1)
	if err != nil {
		return err
	}
	m2, err := loadModel(path2)
	if err != nil {
		return err
	}

	report, err := cmlink.Compare(m1, m2, cmlink.Options{
		Mode:    c.String("mode"),
		FastIns: c.Bool("fast-ins"),
		Hash:    c.Bool("hash"),
	})
	if err != nil {
		return err
	}

	if report.Extended {
		fmt.Fprint(c.App.Writer, report.ExtendedTable())
		return nil
	}
	fmt.Fprintln(c.App.Writer, report.Line())
	return nil
}

func loadModel(path string) (cmlink.NamedModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return cmlink.NamedModel{}, err
	}
	defer f.Close()

	model, err := iocm.Parse(f)
	if err != nil {
		return cmlink.NamedModel{}, err
	}
	name := filepath.Base(path)
	return cmlink.NamedModel{Name: name, Model: model}, nil
}

// cmFileRegexp matches the .cm.gz filenames an Rfam-style directory listing
// links to.
var cmFileRegexp = regexp.MustCompile(`\.cm\.gz$`)

// fetchCommand scrapes an HTML directory listing for .cm.gz links and
// downloads each one into destDir, adapted from poly's genbankClone scraper
// to this module's Rfam-flavoured file layout.
func fetchCommand(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("fetch wants exactly 2 arguments: <directory-url> <dest-dir>")
	}
	dirURL, destDir := c.Args().Get(0), c.Args().Get(1)

	if _, err := os.Stat(destDir); os.IsNotExist(err) {
		if err := os.MkdirAll(destDir, 0o777); err != nil {
			return err
		}
	}

	res, err := http.Get(dirURL)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch: status code error: %d %s", res.StatusCode, res.Status)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return err
	}

	var downloadErr error
	doc.Find("a").Each(func(i int, s *goquery.Selection) {
		if downloadErr != nil {
			return
		}
		href, ok := s.Attr("href")
		if !ok || !cmFileRegexp.MatchString(href) {
			return
		}
		remote := dirURL + href
		local := filepath.Join(destDir, href)
		if err := downloadFile(local, remote); err != nil {
			downloadErr = err
			pterm.Error.Println(err.Error())
			return
		}
		pterm.Info.Println("downloaded " + remote)
	})
	return downloadErr
}

func downloadFile(path, url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}
