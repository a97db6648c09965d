package field

import "testing"

func TestAddIsXor(t *testing.T) {
	a := New128(0x1234, 0x5678)
	b := New128(0x00ff, 0xff00)
	got := Add(a, b)
	want := New128(0x1234^0x00ff, 0x5678^0xff00)
	if !got.Equal(want) {
		t.Fatalf("Add = %+v, want %+v", got, want)
	}
	if !Add(a, a).Equal(Zero) {
		t.Fatalf("a+a should be zero in characteristic 2")
	}
}

func TestMulIdentities(t *testing.T) {
	a := New128(0xdeadbeef, 0x1)
	if !Mul(a, Zero).Equal(Zero) {
		t.Fatalf("a*0 should be 0")
	}
	if !Mul(a, One).Equal(a) {
		t.Fatalf("a*1 should be a")
	}
}

func TestMulCommutesAndDistributes(t *testing.T) {
	a, b, c := New128(3, 7), New128(11, 0), New128(0, 99)
	if !Mul(a, b).Equal(Mul(b, a)) {
		t.Fatalf("multiplication not commutative")
	}
	lhs := Mul(a, Add(b, c))
	rhs := Add(Mul(a, b), Mul(a, c))
	if !lhs.Equal(rhs) {
		t.Fatalf("multiplication does not distribute over addition")
	}
}

func TestInvRoundTrip(t *testing.T) {
	cases := []Elem{One, New128(2, 0), New128(0, 1), New128(12345, 67890)}
	for _, a := range cases {
		inv, err := Inv(a)
		if err != nil {
			t.Fatalf("Inv(%+v): %v", a, err)
		}
		if !Mul(a, inv).Equal(One) {
			t.Fatalf("a*Inv(a) != 1 for a=%+v", a)
		}
	}
}

func TestInvZeroFails(t *testing.T) {
	if _, err := Inv(Zero); err == nil {
		t.Fatalf("Inv(0) should fail")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	a, err := Random()
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	b, err := FromBytes(a.Bytes())
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("Bytes round trip mismatch: %+v != %+v", a, b)
	}
}

func TestBit(t *testing.T) {
	a := New128(0b1010, 0)
	if a.Bit(0) != 0 || a.Bit(1) != 1 || a.Bit(2) != 0 || a.Bit(3) != 1 {
		t.Fatalf("Bit() mismatch for 0b1010")
	}
}

func TestDegreeAndWidth(t *testing.T) {
	for level := 0; level <= 7; level++ {
		if Width(level)*Degree(level) != NumBits {
			t.Fatalf("Width(%d)*Degree(%d) != %d", level, level, NumBits)
		}
	}
}

func TestPackProjectChunkRoundTrip(t *testing.T) {
	for level := 0; level <= 6; level++ {
		d := Degree(level)
		chunk := make([]Elem, d)
		for j := range chunk {
			x, err := Random()
			if err != nil {
				t.Fatalf("Random: %v", err)
			}
			chunk[j] = MaskLevel(x, level)
		}
		packed := PackChunk(chunk, level)
		for j, want := range chunk {
			got := ProjectChunk(packed, level, j)
			if !got.Equal(want) {
				t.Fatalf("level %d chunk %d: ProjectChunk = %+v, want %+v", level, j, got, want)
			}
		}
	}
}
