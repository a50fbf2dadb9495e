package rv32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordReadWriteRoundTrip(t *testing.T) {
	m := NewMemory(DefaultRegions())
	m.WriteWord(DefaultDataBegin, 0xDEADBEEF)
	assert.Equal(t, uint32(0xDEADBEEF), m.ReadWord(DefaultDataBegin))
}

func TestWordIsLittleEndianAssemblyOfBytes(t *testing.T) {
	m := NewMemory(DefaultRegions())
	m.WriteWord(DefaultDataBegin, 0x11223344)
	assert.Equal(t, uint8(0x44), m.ReadByte(DefaultDataBegin))
	assert.Equal(t, uint8(0x33), m.ReadByte(DefaultDataBegin+1))
	assert.Equal(t, uint8(0x22), m.ReadByte(DefaultDataBegin+2))
	assert.Equal(t, uint8(0x11), m.ReadByte(DefaultDataBegin+3))

	b0 := uint32(m.ReadByte(DefaultDataBegin))
	b1 := uint32(m.ReadByte(DefaultDataBegin + 1))
	b2 := uint32(m.ReadByte(DefaultDataBegin + 2))
	b3 := uint32(m.ReadByte(DefaultDataBegin + 3))
	assert.Equal(t, m.ReadWord(DefaultDataBegin), b0|b1<<8|b2<<16|b3<<24)
}

func TestOutOfRangeAccessesAreSilent(t *testing.T) {
	m := NewMemory(DefaultRegions())
	assert.Equal(t, uint32(0), m.ReadWord(0xDEAD0000))
	m.WriteWord(0xDEAD0000, 0xFFFFFFFF) // must not panic, must not be observable
	assert.Equal(t, uint32(0), m.ReadWord(0xDEAD0000))
}

func TestRegionsAreDisjoint(t *testing.T) {
	regions := DefaultRegions()
	for i := range regions {
		for j := range regions {
			if i == j {
				continue
			}
			overlap := regions[i].Begin <= regions[j].End && regions[j].Begin <= regions[i].End
			assert.False(t, overlap, "regions %s and %s overlap", regions[i].Name, regions[j].Name)
		}
	}
}

func TestResetZeroesAllRegions(t *testing.T) {
	m := NewMemory(DefaultRegions())
	m.WriteWord(DefaultTextBegin, 1)
	m.WriteWord(DefaultDataBegin, 2)
	m.Reset()
	assert.Equal(t, uint32(0), m.ReadWord(DefaultTextBegin))
	assert.Equal(t, uint32(0), m.ReadWord(DefaultDataBegin))
}
