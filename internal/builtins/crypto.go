package builtins

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/barnvm/corevm/value"
	"golang.org/x/crypto/ripemd160"
)

// hash(algorithm, text) -> hex digest.
func builtinHash(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("hash() takes exactly two arguments: algorithm, text")
	}
	algo, ok := args[0].(value.Str)
	if !ok {
		return nil, fmt.Errorf("hash() algorithm must be a string")
	}
	text, ok := args[1].(value.Str)
	if !ok {
		return nil, fmt.Errorf("hash() text must be a string")
	}

	var sum []byte
	switch string(algo) {
	case "md5":
		s := md5.Sum([]byte(text))
		sum = s[:]
	case "sha1":
		s := sha1.Sum([]byte(text))
		sum = s[:]
	case "sha256":
		s := sha256.Sum256([]byte(text))
		sum = s[:]
	case "ripemd160":
		h := ripemd160.New()
		h.Write([]byte(text))
		sum = h.Sum(nil)
	default:
		return nil, fmt.Errorf("hash(): unsupported algorithm %q", algo)
	}
	return value.Str(hex.EncodeToString(sum)), nil
}

// crypt(password, salt) returns a salted digest in the same spirit as
// the traditional Unix crypt(3) builtin. See DESIGN.md for why this is
// built on ripemd160 rather than a dedicated crypt(3) library.
func builtinCrypt(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("crypt() takes exactly two arguments: password, salt")
	}
	password, ok := args[0].(value.Str)
	if !ok {
		return nil, fmt.Errorf("crypt() password must be a string")
	}
	salt, ok := args[1].(value.Str)
	if !ok {
		return nil, fmt.Errorf("crypt() salt must be a string")
	}

	h := ripemd160.New()
	h.Write([]byte(salt))
	h.Write([]byte(password))
	sum := h.Sum(nil)
	return value.Str(string(salt) + "$" + hex.EncodeToString(sum)), nil
}
