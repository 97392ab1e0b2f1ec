package image

import (
	"bytes"
	"testing"

	"github.com/clktmr/rukaibox/config"
	"github.com/clktmr/rukaibox/tools/uf2"
)

func TestWrite(t *testing.T) {
	cfg := config.Default()
	region, err := config.Region(cfg)
	if err != nil {
		t.Fatal(err)
	}

	var bin bytes.Buffer
	if err := Write(&bin, cfg, "bin"); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(bin.Bytes(), region) {
		t.Fatal("bin image differs from region")
	}

	var img bytes.Buffer
	if err := Write(&img, cfg, "uf2"); err != nil {
		t.Fatal(err)
	}
	blocks, err := uf2.ReadAll(&img)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Addr != 0x10f00000 || blocks[0].Family != uf2.RP2040 {
		t.Fatalf("unexpected block at %#x family %#x", blocks[0].Addr, blocks[0].Family)
	}
	if !bytes.Equal(blocks[0].Data, region) {
		t.Fatal("uf2 payload differs from region")
	}

	if err := Write(&img, cfg, "elf"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestFlashCommand(t *testing.T) {
	if err := flash("true --quiet", "config.uf2"); err != nil {
		t.Skip("true not available:", err)
	}
	if err := flash("", "config.uf2"); err == nil {
		t.Fatal("expected error for empty command")
	}
}
