package ioformat

import (
	"bufio"
	"fmt"
	"io"
)

// canonicalCertificateFormat restricts canonicalInstanceFormat's
// aliases to the two families a certificate is actually defined for.
func canonicalCertificateFormat(name string) string {
	switch canonicalInstanceFormat(name) {
	case "gecco2020":
		return "gecco2020"
	case "pace2025":
		return "pace2025"
	default:
		return ""
	}
}

// ReadCertificate parses a solution certificate in the named format
// and returns the chosen sets as 0-based ids, regardless of the
// format's own on-disk numbering.
func ReadCertificate(r io.Reader, format string) ([]int, error) {
	if canonicalCertificateFormat(format) == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	t := newTokenizer(r)
	k, err := t.int()
	if err != nil {
		return nil, err
	}

	oneBased := canonicalCertificateFormat(format) == "pace2025"
	ids := make([]int, k)
	for i := 0; i < k; i++ {
		id, err := t.int()
		if err != nil {
			return nil, fmt.Errorf("ioformat: certificate: set %d/%d: %w", i+1, k, err)
		}
		if oneBased {
			id--
		}
		ids[i] = id
	}
	return ids, nil
}

// WriteCertificate emits ids (0-based) as a solution certificate in
// the named format: a leading count, then gecco2020's whitespace-
// separated 0-based ids or pace2025's one-per-line 1-based ids.
func WriteCertificate(w io.Writer, ids []int, format string) error {
	switch canonicalCertificateFormat(format) {
	case "gecco2020":
		bw := bufio.NewWriter(w)
		if _, err := fmt.Fprintf(bw, "%d\n", len(ids)); err != nil {
			return err
		}
		for i, id := range ids {
			sep := " "
			if i == 0 {
				sep = ""
			}
			if _, err := fmt.Fprintf(bw, "%s%d", sep, id); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
		return bw.Flush()
	case "pace2025":
		bw := bufio.NewWriter(w)
		if _, err := fmt.Fprintf(bw, "%d\n", len(ids)); err != nil {
			return err
		}
		for _, id := range ids {
			if _, err := fmt.Fprintf(bw, "%d\n", id+1); err != nil {
				return err
			}
		}
		return bw.Flush()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
