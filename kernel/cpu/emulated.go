package cpu

// Emulated is a software model of the Core used when the kernel runs hosted
// (simulator and tests). Memory is word addressed; unaligned accesses are
// rounded down to the containing word.
type Emulated struct {
	irqEnabled bool
	halted     bool
	ttbr0      uint32
	dfar       uint32
	mem        map[uint32]uint32

	// Counters for interrupt mask and TTBR0 updates issued by the kernel.
	// Transitions caused by exception entry/return are not counted.
	EnableCalls   int
	DisableCalls  int
	TTBR0Switches int
}

// NewEmulated returns an emulated core with interrupts enabled and empty
// memory.
func NewEmulated() *Emulated {
	return &Emulated{
		irqEnabled: true,
		mem:        make(map[uint32]uint32),
	}
}

// EnableInterrupts enables interrupt handling.
func (c *Emulated) EnableInterrupts() {
	c.EnableCalls++
	c.irqEnabled = true
}

// DisableInterrupts disables interrupt handling.
func (c *Emulated) DisableInterrupts() {
	c.DisableCalls++
	c.irqEnabled = false
}

// InterruptsEnabled returns true if interrupts are currently enabled.
func (c *Emulated) InterruptsEnabled() bool {
	return c.irqEnabled
}

// EnterException models the hardware side of taking an exception: the core
// masks interrupts before the first handler instruction executes.
func (c *Emulated) EnterException() {
	c.irqEnabled = false
}

// ReturnFromException models the SPSR restore performed on exception return.
func (c *Emulated) ReturnFromException() {
	c.irqEnabled = true
}

// SwitchTTBR0 loads TTBR0.
func (c *Emulated) SwitchTTBR0(ttbr0 uint32) {
	c.TTBR0Switches++
	c.ttbr0 = ttbr0
}

// ActiveTTBR0 returns the value currently loaded in TTBR0.
func (c *Emulated) ActiveTTBR0() uint32 {
	return c.ttbr0
}

// SetFaultAddress latches addr into the data fault address register.
func (c *Emulated) SetFaultAddress(addr uint32) {
	c.dfar = addr
}

// FaultAddress returns the contents of the data fault address register.
func (c *Emulated) FaultAddress() uint32 {
	return c.dfar
}

// ReadWord returns the word at addr. Unwritten memory reads as zero.
func (c *Emulated) ReadWord(addr uint32) uint32 {
	return c.mem[addr&^3]
}

// WriteWord stores val at addr.
func (c *Emulated) WriteWord(addr, val uint32) {
	c.mem[addr&^3] = val
}

// LoadByte returns the byte at addr using little-endian word layout.
func (c *Emulated) LoadByte(addr uint32) byte {
	return byte(c.ReadWord(addr) >> ((addr & 3) * 8))
}

// StoreBytes copies data into memory starting at addr.
func (c *Emulated) StoreBytes(addr uint32, data []byte) {
	for i, b := range data {
		a := addr + uint32(i)
		shift := (a & 3) * 8
		word := c.ReadWord(a) &^ (0xFF << shift)
		c.WriteWord(a, word|uint32(b)<<shift)
	}
}

// Halt stops instruction execution.
func (c *Emulated) Halt() {
	c.halted = true
}

// Halted returns true once Halt has been called.
func (c *Emulated) Halted() bool {
	return c.halted
}
