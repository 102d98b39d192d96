package idgen

import (
	"encoding/base32"
	"fmt"
	"regexp"
)

const zBase32Alphabet = "ybndrfg8ejkmcpqxot1uwisza345h769"

var zBase32Encoding = base32.NewEncoding(zBase32Alphabet).WithPadding(base32.NoPadding)

const idBytes = 16

// encodeID encodes the id and reports if it starts with a letter.
func encodeID(data []byte) (string, bool) {
	s := zBase32Encoding.EncodeToString(data[:idBytes])
	return s, s[0] >= 'a' && s[0] <= 'z'
}

func divCeil(a, b int) int {
	return (a + b - 1) / b
}

// RE matches a valid identifier.
var RE = regexp.MustCompile(fmt.Sprintf("^[a-z][%s]{%d}$", zBase32Alphabet, divCeil(idBytes*8, 5)-1))
