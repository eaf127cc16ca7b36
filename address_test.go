package custody_test

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexadecimal address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := custody.Address(b)

		So(addr.String(), ShouldNotEqual, fmt.Sprintf("%X", []byte("abcd")))
		So(addr.String(), ShouldEqual, strings.ToUpper(hex.EncodeToString(b)))
	})

	Convey("test condition printing", t, func() {
		cond := custody.NewCondition("vault", "seed", []byte("vault"))

		So(cond.String(), ShouldEqual, "vault/seed/"+fmt.Sprintf("%X", []byte("vault")))
		So(custody.Condition("nope").String(), ShouldStartWith, "Invalid Condition")
	})

	Convey("empty address is printed as nil", t, func() {
		So(custody.Address(nil).String(), ShouldEqual, "(nil)")
	})
}

func TestConditionAddress(t *testing.T) {
	Convey("addresses derived from conditions", t, func() {
		a := custody.NewCondition("vault", "seed", []byte("deposit"))
		b := custody.NewCondition("vault", "seed", []byte("deposit"))
		c := custody.NewCondition("vault", "seed", []byte("vault"))

		Convey("have the identity length", func() {
			So(len(a.Address()), ShouldEqual, custody.AddressLength)
			So(a.Address().Validate(), ShouldBeNil)
		})

		Convey("are deterministic", func() {
			So(a.Address().Equals(b.Address()), ShouldBeTrue)
		})

		Convey("differ for different data", func() {
			So(a.Address().Equals(c.Address()), ShouldBeFalse)
		})

		Convey("can be parsed back", func() {
			ext, typ, data, err := a.Parse()
			So(err, ShouldBeNil)
			So(ext, ShouldEqual, "vault")
			So(typ, ShouldEqual, "seed")
			So(string(data), ShouldEqual, "deposit")
		})

		Convey("accept binary data containing newlines", func() {
			cond := custody.NewCondition("sigs", "ed25519", []byte{0x0a, 0x00, 0x20})
			So(cond.Validate(), ShouldBeNil)
		})
	})

	Convey("malformed conditions are rejected", t, func() {
		So(errors.ErrInput.Is(custody.Condition("a/b").Validate()), ShouldBeTrue)
		_, _, _, err := custody.Condition("toolongextension/seed/x").Parse()
		So(errors.ErrInput.Is(err), ShouldBeTrue)
	})

	Convey("nil data produces no address", t, func() {
		So(custody.NewAddress(nil), ShouldBeNil)
	})
}

func TestAddressBech32(t *testing.T) {
	Convey("bech32 encoding", t, func() {
		addr := custody.NewCondition("sigs", "ed25519", []byte("pubkey")).Address()

		enc, err := addr.Bech32()
		So(err, ShouldBeNil)
		So(enc, ShouldStartWith, custody.Bech32Prefix+"1")

		Convey("round trips", func() {
			got, err := custody.ParseBech32(enc)
			So(err, ShouldBeNil)
			So(got.Equals(addr), ShouldBeTrue)
		})

		Convey("is accepted in JSON", func() {
			var got custody.Address
			err := json.Unmarshal([]byte(`"bech32:`+enc+`"`), &got)
			So(err, ShouldBeNil)
			So(got.Equals(addr), ShouldBeTrue)
		})

		Convey("rejects corrupted input", func() {
			_, err := custody.ParseBech32(enc[:len(enc)-1] + "q")
			So(errors.ErrInput.Is(err), ShouldBeTrue)
		})
	})
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := custody.NewCondition("foo", "bar", []byte("conditiondata")).Address()

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr custody.Address
	}{
		"default decoding": {
			json:     `"` + hex.EncodeToString(addr) + `"`,
			wantAddr: addr,
		},
		"hex decoding": {
			json:     `"hex:` + hex.EncodeToString(addr) + `"`,
			wantAddr: addr,
		},
		"hex of invalid length": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: addr,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a custody.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !a.Equals(tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestConditionJSON(t *testing.T) {
	cond := custody.NewCondition("vault", "seed", []byte("deposit"))
	raw, err := json.Marshal(cond)
	if err != nil {
		t.Fatalf("cannot marshal: %s", err)
	}
	var got custody.Condition
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("cannot unmarshal: %s", err)
	}
	if !got.Equals(cond) {
		t.Fatalf("want %s, got %s", cond, got)
	}
}
