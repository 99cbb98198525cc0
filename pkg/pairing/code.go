package pairing

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/pearpass/native-core/pkg/crypto"
)

// pairingCodeTag domain-separates the pairing-code digest from every other
// use of sha256 in this module. Changing it changes every pairing code ever
// derived, so it is versioned rather than edited.
const pairingCodeTag = "pearpass/pairingcode/v1"

// DerivePairingCode computes the human-presented pairing code for a host
// identity: sha256(tag || pairingSecret || edPub), formatted as a 6-digit
// decimal group and a 4-digit hex group separated by a dash, e.g.
// "042117-9B3F". The preimage orders tag, then secret, then public key; see
// DESIGN.md for why this layout was chosen over the alternative considered.
func DerivePairingCode(edPub [32]byte, pairingSecret [32]byte) string {
	preimage := make([]byte, 0, len(pairingCodeTag)+32+32)
	preimage = append(preimage, pairingCodeTag...)
	preimage = append(preimage, pairingSecret[:]...)
	preimage = append(preimage, edPub[:]...)

	digest := crypto.SHA256(preimage)

	decimalPart := binary.BigEndian.Uint32(digest[0:4]) % 1_000_000
	hexPart := binary.BigEndian.Uint16(digest[4:6])

	return fmt.Sprintf("%06d-%04X", decimalPart, hexPart)
}

// VerifyPairingCode reports whether userInput matches the pairing code
// derived from edPub and pairingSecret. The comparison is case-insensitive
// (the hex group may be typed in either case) and whitespace-trimmed, and
// runs in constant time once both sides are normalized to the same case.
func VerifyPairingCode(edPub [32]byte, pairingSecret [32]byte, userInput string) bool {
	want := DerivePairingCode(edPub, pairingSecret)
	got := strings.ToUpper(strings.TrimSpace(userInput))
	return crypto.CtEq([]byte(strings.ToUpper(want)), []byte(got))
}
