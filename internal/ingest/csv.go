package ingest

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/rigsight/gaslog-cli/internal/model"
)

// ReadCSVFile reads a CSV mud-log export from disk.
func ReadCSVFile(path string, opts Options) ([]model.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: open csv")
	}
	defer f.Close()
	return ReadCSV(f, opts)
}

// ReadCSV reads a CSV mud-log export. Logging-unit software frequently emits
// GBK-encoded files; when no charset is forced the content is sniffed as
// UTF-8 first and decoded as GBK otherwise.
func ReadCSV(r io.Reader, opts Options) ([]model.Sample, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read csv")
	}

	decoded, err := decodeCharset(raw, opts.Charset)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "ingest: parse csv")
	}

	return buildSamples(rows, opts)
}

// decodeCharset converts raw bytes to UTF-8. An explicit charset name is
// resolved through the HTML encoding index; otherwise valid UTF-8 passes
// through and anything else is assumed GBK.
func decodeCharset(raw []byte, charset string) ([]byte, error) {
	// strip a UTF-8 BOM if present
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})

	name := charset
	if name == "" {
		if utf8.Valid(raw) {
			return raw, nil
		}
		name = "gbk"
		zap.L().Debug("ingest: csv is not valid utf-8, decoding as gbk")
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: unsupported charset %q", name)
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: decode %s", name)
	}
	return decoded, nil
}
