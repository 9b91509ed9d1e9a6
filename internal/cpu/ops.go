package cpu

// Handlers run after Cycle has already advanced PC past the instruction.

func opNOP(*CPU, Instruction) error { return nil }

func opCLS(c *CPU, _ Instruction) error {
	c.fb.Clear()
	return nil
}

func opRET(c *CPU, _ Instruction) error {
	if c.SP == 0 {
		return ErrStackUnderflow
	}
	c.SP--
	c.PC = c.Stack[c.SP]
	return nil
}

func opJP(c *CPU, in Instruction) error {
	c.PC = in.NNN
	return nil
}

func opCALL(c *CPU, in Instruction) error {
	if int(c.SP) >= StackSize {
		return ErrStackOverflow
	}
	c.Stack[c.SP] = c.PC
	c.SP++
	c.PC = in.NNN
	return nil
}

func (c *CPU) skipIf(cond bool) {
	if cond {
		c.PC += 2
	}
}

func opSEImm(c *CPU, in Instruction) error {
	c.skipIf(c.V[in.X] == in.KK)
	return nil
}

func opSNEImm(c *CPU, in Instruction) error {
	c.skipIf(c.V[in.X] != in.KK)
	return nil
}

func opSEReg(c *CPU, in Instruction) error {
	c.skipIf(c.V[in.X] == c.V[in.Y])
	return nil
}

func opSNEReg(c *CPU, in Instruction) error {
	c.skipIf(c.V[in.X] != c.V[in.Y])
	return nil
}

func opLDImm(c *CPU, in Instruction) error {
	c.V[in.X] = in.KK
	return nil
}

// 7xkk wraps and leaves VF alone.
func opADDImm(c *CPU, in Instruction) error {
	c.V[in.X] += in.KK
	return nil
}

func opLDReg(c *CPU, in Instruction) error {
	c.V[in.X] = c.V[in.Y]
	return nil
}

func opOR(c *CPU, in Instruction) error {
	c.V[in.X] |= c.V[in.Y]
	return nil
}

func opAND(c *CPU, in Instruction) error {
	c.V[in.X] &= c.V[in.Y]
	return nil
}

func opXOR(c *CPU, in Instruction) error {
	c.V[in.X] ^= c.V[in.Y]
	return nil
}

// The arithmetic handlers write the result first and the flag last, so
// with X == F the flag is what remains in VF.

func opADDReg(c *CPU, in Instruction) error {
	sum := uint16(c.V[in.X]) + uint16(c.V[in.Y])
	c.V[in.X] = byte(sum)
	c.V[0xF] = flag(sum > 0xFF)
	return nil
}

// VF is 1 when there is no borrow.
func opSUB(c *CPU, in Instruction) error {
	x, y := c.V[in.X], c.V[in.Y]
	c.V[in.X] = x - y
	c.V[0xF] = flag(x >= y)
	return nil
}

func opSUBN(c *CPU, in Instruction) error {
	x, y := c.V[in.X], c.V[in.Y]
	c.V[in.X] = y - x
	c.V[0xF] = flag(y >= x)
	return nil
}

func opSHR(c *CPU, in Instruction) error {
	x := c.V[in.X]
	c.V[in.X] = x >> 1
	c.V[0xF] = x & 0x01
	return nil
}

func opSHL(c *CPU, in Instruction) error {
	x := c.V[in.X]
	c.V[in.X] = x << 1
	c.V[0xF] = x >> 7
	return nil
}

func opLDI(c *CPU, in Instruction) error {
	c.I = in.NNN
	return nil
}

func opJPV0(c *CPU, in Instruction) error {
	c.PC = in.NNN + uint16(c.V[0])
	return nil
}

func opRND(c *CPU, in Instruction) error {
	c.V[in.X] = c.rng.Byte() & in.KK
	return nil
}

func opDRW(c *CPU, in Instruction) error {
	rows := make([]byte, in.N)
	for i := range rows {
		rows[i] = c.bus.Read(c.I + uint16(i))
	}
	c.V[0xF] = flag(c.fb.DrawSprite(c.V[in.X], c.V[in.Y], rows))
	return nil
}

func opSKP(c *CPU, in Instruction) error {
	c.skipIf(c.Keypad[c.V[in.X]&0xF])
	return nil
}

func opSKNP(c *CPU, in Instruction) error {
	c.skipIf(!c.Keypad[c.V[in.X]&0xF])
	return nil
}

func opLDVxDT(c *CPU, in Instruction) error {
	c.V[in.X] = c.DelayTimer
	return nil
}

// Fx0A stores the lowest pressed key. With nothing pressed PC is moved back
// onto the instruction so the next cycle runs it again.
func opLDVxK(c *CPU, in Instruction) error {
	for k, down := range c.Keypad {
		if down {
			c.V[in.X] = byte(k)
			return nil
		}
	}
	c.PC -= 2
	return nil
}

func opLDDTVx(c *CPU, in Instruction) error {
	c.DelayTimer = c.V[in.X]
	return nil
}

func opLDSTVx(c *CPU, in Instruction) error {
	c.SoundTimer = c.V[in.X]
	return nil
}

func opADDI(c *CPU, in Instruction) error {
	c.I += uint16(c.V[in.X])
	return nil
}

func opLDF(c *CPU, in Instruction) error {
	c.I = FontStart + FontSpriteHeight*uint16(c.V[in.X]&0xF)
	return nil
}

func opLDB(c *CPU, in Instruction) error {
	v := c.V[in.X]
	c.bus.Write(c.I, v/100)
	c.bus.Write(c.I+1, v/10%10)
	c.bus.Write(c.I+2, v%10)
	return nil
}

func opLDStore(c *CPU, in Instruction) error {
	for r := uint16(0); r <= uint16(in.X); r++ {
		c.bus.Write(c.I+r, c.V[r])
	}
	return nil
}

func opLDLoad(c *CPU, in Instruction) error {
	for r := uint16(0); r <= uint16(in.X); r++ {
		c.V[r] = c.bus.Read(c.I + r)
	}
	return nil
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}
