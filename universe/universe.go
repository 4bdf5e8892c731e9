// Package universe loads instrument symbol lists from plain text, CSV,
// zip archives and xz-compressed files. Exchanges publish their ETF
// lists in all four shapes.
package universe

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"
)

// Load reads a symbol list. The format follows the file extension:
// .zip archives are extracted and the first list inside is used,
// .xz files are decompressed, anything else is parsed as text or CSV.
// Symbols come back upper-cased, deduplicated, in file order.
func Load(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return loadZip(path)
	case ".xz":
		return loadXZ(path)
	default:
		return loadPlain(path)
	}
}

func loadPlain(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbol list: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func loadXZ(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbol list: %w", err)
	}
	defer f.Close()

	r, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	return parse(r)
}

func loadZip(path string) ([]string, error) {
	dir, err := os.MkdirTemp("", "universe")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(path, dir); err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	var listPath string
	err = filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || listPath != "" {
			return err
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".txt", ".csv":
			listPath = p
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if listPath == "" {
		return nil, fmt.Errorf("no symbol list inside %s", path)
	}

	return loadPlain(listPath)
}

// parse handles both one-symbol-per-line text and CSV where the symbol
// is the first column. A leading SYMBOL header row is skipped.
func parse(r io.Reader) ([]string, error) {
	var (
		symbols []string
		seen    = make(map[string]bool)
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		field := strings.TrimSpace(sc.Text())
		if i := strings.IndexByte(field, ','); i >= 0 {
			field = strings.TrimSpace(field[:i])
		}
		if field == "" || strings.HasPrefix(field, "#") {
			continue
		}

		sym := strings.ToUpper(field)
		if sym == "SYMBOL" || seen[sym] {
			continue
		}
		seen[sym] = true
		symbols = append(symbols, sym)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read symbol list: %w", err)
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("symbol list is empty")
	}
	return symbols, nil
}
