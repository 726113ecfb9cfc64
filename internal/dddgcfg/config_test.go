package dddgcfg

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load([]byte(`ready_mode: true`))
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if cfg.AddrMask != DefaultAddrMask {
		t.Fatalf("got addr mask %#x, want default %#x", cfg.AddrMask, uint64(DefaultAddrMask))
	}
	if cfg.ByteSize != DefaultByteSize {
		t.Fatalf("got byte size %d, want default %d", cfg.ByteSize, DefaultByteSize)
	}
	if !cfg.ReadyMode {
		t.Fatal("expected ready_mode to be honored")
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load([]byte("addr_mask: 255\nbyte_size: 4\nmax_line_bytes: 1024\n"))
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if cfg.AddrMask != 255 || cfg.ByteSize != 4 || cfg.MaxLineBytes != 1024 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadMalformed(t *testing.T) {
	if _, err := Load([]byte("not: valid: yaml: at: all: -")); err == nil {
		t.Fatal("expected a parse error")
	}
}
