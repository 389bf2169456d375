package sheetstream

import (
	"bytes"
	"fmt"
	"io"

	"github.com/richardlehane/mscfb"
)

// cfbSignature opens every OLE compound file: legacy .xls workbooks and
// password-protected OOXML packages alike.
var cfbSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// detectContainer rejects inputs that are compound files instead of zip
// packages, telling encrypted xlsx apart from legacy xls.
func detectContainer(r io.ReaderAt, size int64) error {
	if size < int64(len(cfbSignature)) {
		return fmt.Errorf("%w: input is %d bytes", ErrInvalidFormat, size)
	}
	head := make([]byte, len(cfbSignature))
	if _, err := r.ReadAt(head, 0); err != nil && err != io.EOF {
		return err
	}
	if !bytes.Equal(head, cfbSignature) {
		return nil
	}

	doc, err := mscfb.New(r)
	if err != nil {
		return fmt.Errorf("%w: compound file: %v", ErrInvalidFormat, err)
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		switch entry.Name {
		case "EncryptionInfo", "EncryptedPackage":
			return ErrEncrypted
		}
	}
	return ErrLegacyFormat
}
