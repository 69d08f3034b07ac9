package extract

import (
	"bytes"
	"errors"
	"strings"

	"github.com/ledongthuc/pdf"
)

// openReader is the decryption gate in front of table scanning. An empty
// password means none was supplied. The returned reader is the decrypted,
// scan-ready view of the document; unencrypted input passes straight through
// and any supplied password is ignored.
func openReader(data []byte, password string) (*pdf.Reader, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err == nil {
		return r, nil
	}

	switch {
	case errors.Is(err, pdf.ErrInvalidPassword):
		if password == "" {
			return nil, &ExtractError{Code: ErrPasswordRequired, Message: "password required for encrypted PDF"}
		}
		r, err = pdf.NewReaderEncrypted(bytes.NewReader(data), int64(len(data)), passwordFunc(password))
		if err == nil {
			return r, nil
		}
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, &ExtractError{Code: ErrInvalidPassword, Message: "invalid password"}
		}
		if isUnsupportedEncryption(err) {
			return nil, &ExtractError{Code: ErrDecryptionUnsupported, Message: "PDF uses an encryption scheme this build cannot decrypt", Cause: err}
		}
		return nil, &ExtractError{Code: ErrInvalidDocument, Message: "open encrypted PDF", Cause: err}

	case isUnsupportedEncryption(err):
		// Encrypted, but with a filter or revision the library rejects. This
		// is an environment deficiency, not a wrong password.
		return nil, &ExtractError{Code: ErrDecryptionUnsupported, Message: "PDF uses an encryption scheme this build cannot decrypt", Cause: err}

	default:
		return nil, &ExtractError{Code: ErrInvalidDocument, Message: "open PDF reader", Cause: err}
	}
}

// passwordFunc yields the user password exactly once. The pdf library calls
// it repeatedly until it returns "".
func passwordFunc(password string) func() string {
	used := false
	return func() string {
		if used {
			return ""
		}
		used = true
		return password
	}
}

// isUnsupportedEncryption matches the library's "unsupported PDF: encryption
// ..." errors for filters and revisions it does not implement.
func isUnsupportedEncryption(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "unsupported PDF") && strings.Contains(msg, "encrypt")
}
