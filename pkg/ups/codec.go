package ups

import (
	"encoding/json"
	"slices"
)

// Encoded is the serialized form of a UPS, shared by the JSON and YAML
// surfaces.
type Encoded struct {
	StemLen uint64   `json:"stem_len" yaml:"stem_len"`
	Stem    []uint64 `json:"stem" yaml:"stem"`
	LoopLen uint64   `json:"loop_len" yaml:"loop_len"`
	Loop    []uint64 `json:"loop" yaml:"loop"`
}

// Encode returns the serialized form of u.
func (u *UPS) Encode() Encoded {
	return Encoded{
		StemLen: u.stemLen,
		Stem:    nonNil(u.stemElems),
		LoopLen: u.loopLen,
		Loop:    nonNil(u.loopElems),
	}
}

// Decode rebuilds and validates a UPS.
func (e Encoded) Decode() (*UPS, error) {
	if e.LoopLen == 0 {
		return nil, ErrZeroPeriod
	}
	u := &UPS{
		stemLen:   e.StemLen,
		stemElems: slices.Clone(e.Stem),
		loopLen:   e.LoopLen,
		loopElems: slices.Clone(e.Loop),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// MarshalJSON implements json.Marshaler.
func (u *UPS) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Encode())
}

// UnmarshalJSON implements json.Unmarshaler. Sets that break the
// representation contract are rejected.
func (u *UPS) UnmarshalJSON(data []byte) error {
	var e Encoded
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}
	decoded, err := e.Decode()
	if err != nil {
		return err
	}
	*u = *decoded
	return nil
}

func nonNil(s []uint64) []uint64 {
	if s == nil {
		return []uint64{}
	}
	return slices.Clone(s)
}
