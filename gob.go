package cache

import (
	"encoding/gob"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"reflect"
	"strings"
)

// ErrIncompatibleDump indicates dump was made with a different set of registered types.
const ErrIncompatibleDump = SentinelError("incompatible dump")

type dumpHeader struct {
	TypesHash uint64
}

type dumpedEntry struct {
	Key   string
	Entry entry
}

// Dump saves cached entries in insertion order and returns a number of processed entries.
//
// Insertion times are kept, so restored cache expires and evicts entries as the original one.
func (c *Expiring) Dump(w io.Writer) (int, error) {
	encoder := gob.NewEncoder(w)

	if err := encoder.Encode(dumpHeader{TypesHash: GobTypesHash()}); err != nil {
		return 0, err
	}

	return c.Walk(func(key string, value Entry) error {
		return encoder.Encode(dumpedEntry{
			Key:   key,
			Entry: entry{Val: value.Value(), At: value.InsertedAt()},
		})
	})
}

// Restore loads cached entries and returns number of processed entries.
//
// Restored keys that already exist are overwritten in place.
func (c *Expiring) Restore(r io.Reader) (int, error) {
	decoder := gob.NewDecoder(r)
	h := dumpHeader{}

	if err := decoder.Decode(&h); err != nil {
		return 0, err
	}

	if h.TypesHash != GobTypesHash() {
		return 0, fmt.Errorf("%w: types hash %d, expected %d", ErrIncompatibleDump, h.TypesHash, GobTypesHash())
	}

	n := 0

	for {
		e := dumpedEntry{}

		err := decoder.Decode(&e)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return n, err
		}

		c.put(e.Key, e.Entry)

		n++
	}

	return n, nil
}

var gobTypesHash uint64

// GobTypesHashReset resets types hash to zero value.
func GobTypesHashReset() {
	gobTypesHash = 0
}

// GobTypesHash returns a fingerprint of a group of types to transfer.
func GobTypesHash() uint64 {
	return gobTypesHash
}

// GobRegister enables cached type transferring.
func GobRegister(values ...interface{}) {
	for _, value := range values {
		h := fnv.New64()
		t := reflect.TypeOf(value)
		// nolint:errcheck // fnv.Write never returns an error.
		_, _ = h.Write([]byte(t.PkgPath() + t.String()))
		recursiveTypeHash(t, h, map[reflect.Type]bool{})
		gobTypesHash ^= h.Sum64()

		gob.Register(value)
	}
}

// recursiveTypeHash hashes exported structure of a type.
func recursiveTypeHash(t reflect.Type, h io.Writer, met map[reflect.Type]bool) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if met[t] {
		return
	}

	met[t] = true

	switch t.Kind() {
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)

			if f.Name != "" && (f.Name[0:1] == strings.ToLower(f.Name[0:1])) {
				continue
			}

			if !f.Anonymous {
				// nolint:errcheck // fnv.Write never returns an error.
				_, _ = h.Write([]byte(f.Name))
			}

			recursiveTypeHash(f.Type, h, met)
		}

	case reflect.Slice, reflect.Array:
		recursiveTypeHash(t.Elem(), h, met)
	case reflect.Map:
		recursiveTypeHash(t.Key(), h, met)
		recursiveTypeHash(t.Elem(), h, met)
	default:
		// nolint:errcheck // fnv.Write never returns an error.
		_, _ = h.Write([]byte(t.String()))
	}
}

// nolint:gochecknoinits // Registering types to a package level registry of "encoding/gob".
func init() {
	gob.Register(map[string]interface{}{})
	gob.Register([]interface{}{})
}
