package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware IO are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts. Writing a 1
	// to a bit in IF requests an interrupt, and writing a 0 clears
	// the request.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F

	// DIV is the upper byte of the system counter. Writing any value
	// resets the whole counter.
	DIV HardwareAddress = 0xFF04
	// TIMA is incremented at the rate selected by TAC and requests the
	// timer interrupt when it overflows.
	TIMA HardwareAddress = 0xFF05
	// TMA is loaded into TIMA when it overflows.
	TMA HardwareAddress = 0xFF06
	// TAC controls the timer.
	//
	//  Bit 2:   Enable
	//  Bit 1-0: Clock select (00=4096 Hz, 01=262144 Hz, 10=65536 Hz, 11=16384 Hz)
	TAC HardwareAddress = 0xFF07

	// NR10 controls the sweep of channel 1.
	//
	//  Bit 6-4: Sweep pace
	//  Bit 3:   Sweep direction (0=add, 1=subtract)
	//  Bit 2-0: Sweep shift
	NR10 HardwareAddress = 0xFF10
	// NR11 holds the duty cycle (bit 7-6) and the length load (bit 5-0)
	// of channel 1.
	NR11 HardwareAddress = 0xFF11
	// NR12 is the volume envelope of channel 1.
	//
	//  Bit 7-4: Initial volume
	//  Bit 3:   Envelope direction (0=decrease, 1=increase)
	//  Bit 2-0: Envelope period
	NR12 HardwareAddress = 0xFF12
	// NR13 is the lower 8 bits of channel 1's frequency. Write only.
	NR13 HardwareAddress = 0xFF13
	// NR14 holds the trigger (bit 7), length enable (bit 6) and upper
	// 3 bits of the frequency of channel 1.
	NR14 HardwareAddress = 0xFF14
	NR21 HardwareAddress = 0xFF16
	NR22 HardwareAddress = 0xFF17
	NR23 HardwareAddress = 0xFF18
	NR24 HardwareAddress = 0xFF19
	// NR30 is channel 3's DAC power (bit 7).
	NR30 HardwareAddress = 0xFF1A
	NR31 HardwareAddress = 0xFF1B
	// NR32 selects channel 3's output level (bit 6-5).
	NR32 HardwareAddress = 0xFF1C
	NR33 HardwareAddress = 0xFF1D
	NR34 HardwareAddress = 0xFF1E
	NR41 HardwareAddress = 0xFF20
	NR42 HardwareAddress = 0xFF21
	// NR43 configures channel 4's shift register.
	//
	//  Bit 7-4: Clock shift
	//  Bit 3:   LFSR width (1=7 bits)
	//  Bit 2-0: Divisor code
	NR43 HardwareAddress = 0xFF22
	NR44 HardwareAddress = 0xFF23
	// NR50 is the master volume and VIN panning.
	NR50 HardwareAddress = 0xFF24
	// NR51 selects which channels are routed to which output terminal.
	NR51 HardwareAddress = 0xFF25
	// NR52 is the sound on/off register. Bit 7 powers the APU, bits
	// 3-0 report the enabled status of each channel and are read only.
	NR52 HardwareAddress = 0xFF26

	// WaveRAMStart is the first address of the 16 byte wave pattern RAM.
	WaveRAMStart HardwareAddress = 0xFF30
	// WaveRAMEnd is the last address of the wave pattern RAM.
	WaveRAMEnd HardwareAddress = 0xFF3F

	// DMA starts a transfer of 160 bytes from XX00 to OAM.
	DMA HardwareAddress = 0xFF46

	// VBK is the address of the VBK hardware register. The VBK
	// hardware register is used to select the current VRAM bank.
	// VBK is only used in CGB mode.
	VBK HardwareAddress = 0xFF4F
	// BDIS unmaps the boot ROM when written.
	BDIS HardwareAddress = 0xFF50
	// HDMA1 and HDMA2 hold the source address of a CGB VRAM transfer,
	// HDMA3 and HDMA4 the destination within VRAM, and HDMA5 starts the
	// transfer of (HDMA5&0x7F+1)*16 bytes.
	HDMA1 HardwareAddress = 0xFF51
	HDMA2 HardwareAddress = 0xFF52
	HDMA3 HardwareAddress = 0xFF53
	HDMA4 HardwareAddress = 0xFF54
	HDMA5 HardwareAddress = 0xFF55

	// SVBK is the address of the SVBK hardware register. The SVBK
	// hardware register is used to select the current WRAM bank.
	// SVBK is only used in CGB mode.
	SVBK HardwareAddress = 0xFF70

	// IE is the address of the IE hardware register. The IE
	// hardware register is used to enable interrupts. Writing a 1
	// to a bit in IE Enables the corresponding interrupt, and writing
	// a 0 disables the interrupt.
	IE HardwareAddress = 0xFFFF
)

// Memory regions of the Game Boy address space.
const (
	ROM0Start   uint16 = 0x0000
	ROMXStart   uint16 = 0x4000
	VRAMStart   uint16 = 0x8000
	ExtRAMStart uint16 = 0xA000
	WRAM0Start  uint16 = 0xC000
	WRAMXStart  uint16 = 0xD000
	EchoStart   uint16 = 0xE000
	OAMStart    uint16 = 0xFE00
	IOStart     uint16 = 0xFF00
	HRAMStart   uint16 = 0xFF80
)
