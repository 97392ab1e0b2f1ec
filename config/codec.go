package config

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/sigurn/crc8"
)

var (
	ErrLength   = errors.New("invalid config length")
	ErrTooLarge = errors.New("config exceeds region size")
	ErrChecksum = errors.New("config checksum mismatch")
	ErrVersion  = errors.New("unsupported config version")
)

const lengthPrefix = 4

// erased flash reads as 0xff
const padding = 0xff

var configCRC8 = crc8.MakeTable(crc8.Params{
	Poly:   0x07,
	Init:   0x00,
	RefIn:  false,
	RefOut: false,
	XorOut: 0x00,
	Check:  0xF4,
	Name:   "CRC-8 rukaibox config",
})

func checksum(data []byte) byte {
	csum := crc8.Init(configCRC8)
	csum = crc8.Update(csum, data, configCRC8)
	return crc8.Complete(csum, configCRC8)
}

// Marshal serializes c. Fields are stored positionally, enums as their
// ordinal, followed by a CRC-8 of all preceding bytes.
func Marshal(c *Config) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	buf := make([]byte, 0, RegionSize)
	buf = binary.BigEndian.AppendUint32(buf, c.Version)
	buf = append(buf, byte(len(c.Profiles)))
	for _, p := range c.Profiles {
		buf = append(buf, byte(len(p.Activation)))
		for _, b := range p.Activation {
			buf = append(buf, byte(b))
		}
		buf = append(buf, byte(p.Logic), byte(p.Socd))
		for _, b := range p.Buttons {
			buf = append(buf, byte(b))
		}
	}
	buf = append(buf, checksum(buf))

	if len(buf) > RegionSize-lengthPrefix {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(buf))
	}
	return buf, nil
}

type decoder struct {
	buf []byte
	err error
}

func (d *decoder) byte() byte {
	if d.err != nil {
		return 0
	}
	if len(d.buf) == 0 {
		d.err = fmt.Errorf("%w: unexpected end of data", ErrLength)
		return 0
	}
	b := d.buf[0]
	d.buf = d.buf[1:]
	return b
}

func (d *decoder) uint32() uint32 {
	var v uint32
	for i := 0; i < 4; i++ {
		v = v<<8 | uint32(d.byte())
	}
	return v
}

// Unmarshal parses data as written by Marshal.
func Unmarshal(data []byte) (c *Config, err error) {
	if len(data) < 1 {
		return nil, ErrLength
	}
	payload, csum := data[:len(data)-1], data[len(data)-1]
	if checksum(payload) != csum {
		return nil, ErrChecksum
	}

	d := decoder{buf: payload}
	c = &Config{Version: d.uint32()}
	if d.err == nil && (c.Version == 0 || c.Version > Version) {
		return nil, fmt.Errorf("%w: %d", ErrVersion, c.Version)
	}

	n := int(d.byte())
	if n > MaxProfiles {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyProfiles, n, MaxProfiles)
	}
	c.Profiles = make([]Profile, n)
	for i := range c.Profiles {
		p := &c.Profiles[i]
		m := int(d.byte())
		if m > MaxActivation {
			return nil, fmt.Errorf("%w: %d > %d", ErrActivationTooLong, m, MaxActivation)
		}
		if m > 0 {
			p.Activation = make([]PhysicalButton, m)
			for j := range p.Activation {
				p.Activation[j] = PhysicalButton(d.byte())
			}
		}
		p.Logic = BaseLogic(d.byte())
		p.Socd = SocdType(d.byte())
		for j := range p.Buttons {
			p.Buttons[j] = PhysicalButton(d.byte())
		}
	}
	if d.err != nil {
		return nil, d.err
	}
	if len(d.buf) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrLength, len(d.buf))
	}

	if err = c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Region returns the complete contents of the config region: a big-endian
// length prefix, the serialized config and padding up to RegionSize.
func Region(c *Config) ([]byte, error) {
	payload, err := Marshal(c)
	if err != nil {
		return nil, err
	}
	region := make([]byte, RegionSize)
	binary.BigEndian.PutUint32(region, uint32(len(payload)))
	n := copy(region[lengthPrefix:], payload)
	for i := lengthPrefix + n; i < len(region); i++ {
		region[i] = padding
	}
	return region, nil
}

// Write writes the config region for c to w.
func Write(w io.Writer, c *Config) error {
	region, err := Region(c)
	if err != nil {
		return err
	}
	_, err = w.Write(region)
	return err
}

// Read loads the config from the region at the start of dev.
func Read(dev io.ReaderAt) (*Config, error) {
	var region [RegionSize]byte
	_, err := io.ReadFull(io.NewSectionReader(dev, 0, RegionSize), region[:])
	if err != nil {
		return nil, err
	}

	n := binary.BigEndian.Uint32(region[:lengthPrefix])
	if n == 0 || n > RegionSize-lengthPrefix {
		return nil, fmt.Errorf("%w: %d", ErrLength, n)
	}
	return Unmarshal(region[lengthPrefix : lengthPrefix+n])
}
