package intent

import (
	"testing"

	"github.com/sandevgo/tuskshop/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestExtractName(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOk bool
	}{
		{input: "nama saya Malinda", want: "Malinda", wantOk: true},
		{input: "Halo, nama saya Malinda", want: "Malinda", wantOk: true},
		{input: "Nama saya adalah budi", want: "Budi", wantOk: true},
		{input: "saya rina dari Bandung", want: "Rina", wantOk: true},
		{input: "Perkenalkan, Andi", want: "Andi", wantOk: true},
		{input: "nama saya José", want: "José", wantOk: true},
		{input: "Nama saya Ñoño", want: "Ñoño", wantOk: true},
		{input: "saya Łukasz", want: "Łukasz", wantOk: true},
		{input: "nama saya siapa", wantOk: false},
		{input: "Status pesanan 2002", wantOk: false},
		{input: "", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ExtractName(tt.input)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecallName(t *testing.T) {
	window := []core.Turn{
		{Role: core.RoleUser, Text: "Halo, nama saya Malinda"},
		{Role: core.RoleAssistant, Text: "Halo Malinda! Senang berkenalan."},
		{Role: core.RoleUser, Text: "Status pesanan 2002"},
		{Role: core.RoleAssistant, Text: "Pesanan #2002 sedang Dikemas via SiCepat."},
	}

	name, ok := RecallName(window)
	assert.True(t, ok)
	assert.Equal(t, "Malinda", name)

	// most recent introduction wins
	window = append(window, core.Turn{Role: core.RoleUser, Text: "eh, nama saya Rani"})
	name, ok = RecallName(window)
	assert.True(t, ok)
	assert.Equal(t, "Rani", name)

	// a later loose "saya ..." sentence does not replace an explicit introduction
	window = []core.Turn{
		{Role: core.RoleUser, Text: "nama saya Malinda"},
		{Role: core.RoleAssistant, Text: "Halo Malinda!"},
		{Role: core.RoleUser, Text: "saya mau retur barang"},
	}
	name, ok = RecallName(window)
	assert.True(t, ok)
	assert.Equal(t, "Malinda", name)

	// loose patterns still apply when nobody said "nama saya"
	name, ok = RecallName([]core.Turn{{Role: core.RoleUser, Text: "saya José dari Bandung"}})
	assert.True(t, ok)
	assert.Equal(t, "José", name)

	// assistant turns are never a source
	_, ok = RecallName([]core.Turn{{Role: core.RoleAssistant, Text: "nama saya Tusk"}})
	assert.False(t, ok)
}
