package binary

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/nserde/nserde-go/ir"
)

func encodeValue(w *bytes.Buffer, v ir.Value) error {
	switch v.Kind {
	case ir.Bool:
		if v.B {
			w.WriteByte(1)
		} else {
			w.WriteByte(0)
		}
		return nil

	case ir.String:
		return encodeString(w, v.S)

	case ir.Number:
		return encodeNumber(w, v)

	case ir.Option:
		if v.Some == nil {
			w.WriteByte(0)
			return nil
		}
		w.WriteByte(1)
		return encodeValue(w, *v.Some)

	case ir.Seq:
		putU64(w, uint64(len(v.Elems)))
		for _, e := range v.Elems {
			if err := encodeValue(w, e); err != nil {
				return err
			}
		}
		return nil

	case ir.Map:
		putU64(w, uint64(len(v.Entries)))
		for _, en := range v.Entries {
			if err := encodeValue(w, en.Key); err != nil {
				return err
			}
			if err := encodeValue(w, en.Val); err != nil {
				return err
			}
		}
		return nil

	case ir.Record:
		for _, f := range v.Fields {
			if err := encodeValue(w, f.Val); err != nil {
				return err
			}
		}
		return nil

	case ir.Variant:
		var idx [4]byte
		binary.LittleEndian.PutUint32(idx[:], uint32(v.VariantIndex))
		w.Write(idx[:])
		for _, f := range v.Fields {
			if err := encodeValue(w, f.Val); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("nserde/binary: cannot encode value of kind %s", v.Kind)
	}
}

func putU64(w *bytes.Buffer, n uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], n)
	w.Write(b[:])
}

func encodeString(w *bytes.Buffer, s string) error {
	putU64(w, uint64(len(s)))
	w.WriteString(s)
	return nil
}

func encodeNumber(w *bytes.Buffer, v ir.Value) error {
	switch v.NumKind {
	case ir.Int8:
		w.WriteByte(byte(int8(v.I)))
	case ir.Int16:
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(int16(v.I)))
		w.Write(b[:])
	case ir.Int32:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(int32(v.I)))
		w.Write(b[:])
	case ir.Int64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(v.I))
		w.Write(b[:])
	case ir.Uint8:
		w.WriteByte(byte(v.U))
	case ir.Uint16:
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(v.U))
		w.Write(b[:])
	case ir.Uint32:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(v.U))
		w.Write(b[:])
	case ir.Uint64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], v.U)
		w.Write(b[:])
	case ir.Float32Kind:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(v.F)))
		w.Write(b[:])
	case ir.Float64Kind:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v.F))
		w.Write(b[:])
	default:
		return fmt.Errorf("nserde/binary: unknown number kind %v", v.NumKind)
	}
	return nil
}
