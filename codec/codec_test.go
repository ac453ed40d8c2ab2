package codec

import (
	"reflect"
	"testing"
)

type pair struct {
	A int
	B string
}

func TestGet(t *testing.T) {
	for _, name := range []string{"json", "gob", "cbor", "msgpack"} {
		c, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%q) error: %v", name, err)
		}
		if c.Name() != name {
			t.Errorf("Get(%q).Name() = %q", name, c.Name())
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("bincode"); err == nil {
		t.Error("Get(\"bincode\") succeeded, want error for unknown codec")
	}
}

func TestRoundTrip(t *testing.T) {
	in := pair{A: 7, B: "seven"}
	for _, c := range []Codec{JSON, Gob, CBOR, Msgpack} {
		data, err := c.Marshal(in)
		if err != nil {
			t.Fatalf("%s: Marshal: %v", c.Name(), err)
		}
		var out pair
		if err := c.Unmarshal(data, &out); err != nil {
			t.Fatalf("%s: Unmarshal: %v", c.Name(), err)
		}
		if !reflect.DeepEqual(in, out) {
			t.Errorf("%s: round trip = %+v, want %+v", c.Name(), out, in)
		}
	}
}
