package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestBackendError_Classification(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewBackendError("set", "product:1", cause)

	if !errors.Is(err, ErrBackend) {
		t.Error("expected errors.Is(err, ErrBackend)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected the cause to be unwrapped")
	}

	var backendErr *BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("expected *BackendError, got %T", err)
	}
	if want := "cache set product:1: connection refused"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	if NewBackendError("get", "k", nil) != nil {
		t.Error("expected nil for nil cause")
	}
}

type payload struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Tags     []string  `json:"tags,omitempty"`
	Created  time.Time `json:"createdAt"`
	Internal string    `json:"-"`
}

func TestCodecs_RoundTrip(t *testing.T) {
	in := payload{
		ID:       7,
		Name:     "MacBook Air M3",
		Price:    1299.99,
		Tags:     []string{"laptop"},
		Created:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Internal: "dropped",
	}

	for _, name := range []string{CodecJSON, CodecMsgpack} {
		t.Run(name, func(t *testing.T) {
			codec, err := CodecByName(name)
			if err != nil {
				t.Fatalf("CodecByName(%q) failed: %v", name, err)
			}
			if codec.Name() != name {
				t.Errorf("Name() = %q, want %q", codec.Name(), name)
			}

			data, err := codec.Marshal(in)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}

			var out payload
			if err := codec.Unmarshal(data, &out); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}

			if out.ID != in.ID || out.Name != in.Name || out.Price != in.Price {
				t.Errorf("round trip mismatch: got %+v", out)
			}
			if !out.Created.Equal(in.Created) {
				t.Errorf("time mismatch: got %v want %v", out.Created, in.Created)
			}
			if out.Internal != "" {
				t.Errorf("expected ignored field to be dropped, got %q", out.Internal)
			}
		})
	}
}

func TestCodecs_DecodeErrorsAreClassified(t *testing.T) {
	for _, codec := range []Codec{JSONCodec(), MsgpackCodec()} {
		var out payload
		err := codec.Unmarshal([]byte{0xc1, 0x00}, &out)
		if !errors.Is(err, ErrCodec) {
			t.Errorf("%s: expected ErrCodec, got %v", codec.Name(), err)
		}
	}
}

func TestCodecByName_Unknown(t *testing.T) {
	if _, err := CodecByName("gob"); err == nil {
		t.Fatal("expected error for unknown codec")
	}

	codec, err := CodecByName("")
	if err != nil || codec.Name() != CodecJSON {
		t.Errorf("expected empty name to select json, got %v %v", codec, err)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	cfg.Codec = "xml"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "Codec") {
		t.Errorf("expected codec validation error, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.ClearConcurrency = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative ClearConcurrency")
	}
}

func TestNewBackend_Drivers(t *testing.T) {
	for _, driver := range []string{DriverSturdyc, DriverTTLCache} {
		t.Run(driver, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Driver = driver

			backend, err := NewBackend(cfg)
			if err != nil {
				t.Fatalf("NewBackend failed: %v", err)
			}
			defer backend.Close()

			ctx := context.Background()
			if err := backend.Set(ctx, "k", []byte("v"), time.Second); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			data, found, err := backend.Get(ctx, "k")
			if err != nil || !found || string(data) != "v" {
				t.Errorf("unexpected Get result: %q %v %v", data, found, err)
			}
		})
	}
}

func TestNewBackend_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TTL = 0

	backend, err := NewBackend(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if backend != nil {
		t.Error("expected nil backend on error")
	}
}
