// Package monitor implements an interactive command line debugger for
// the emulation core: stepping, disassembly, assembly, memory dumps and
// savestates.
package monitor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/beevik/cmd"

	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/internal/savestate"
	"github.com/thelolagemann/gbcore/pkg/bits"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// errQuit stops the command loop.
var errQuit = errors.New("monitor: quit")

// Monitor drives a GameBoy from textual commands.
type Monitor struct {
	gb *gameboy.GameBoy

	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool

	lastCmd  *cmd.Selection
	settings *settings
	labels   map[string]uint16

	log log.Logger
}

// Opt configures a Monitor.
type Opt func(m *Monitor)

// WithLogger sets the logger.
func WithLogger(l log.Logger) Opt {
	return func(m *Monitor) {
		m.log = l
	}
}

// New returns a monitor attached to gb.
func New(gb *gameboy.GameBoy, opts ...Opt) *Monitor {
	m := &Monitor{
		gb:       gb,
		settings: newSettings(),
		labels:   make(map[string]uint16),
		log:      log.NewNullLogger(),
	}
	m.settings.NextDisasmAddr = gb.CPU.PC
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run accepts commands from r and writes the results to w until r is
// exhausted or the quit command is entered. An empty line repeats the
// previous command. If interactive, a prompt is displayed while the
// monitor waits for the next command.
func (m *Monitor) Run(r io.Reader, w io.Writer, interactive bool) error {
	m.input = bufio.NewScanner(r)
	m.output = bufio.NewWriter(w)
	m.interactive = interactive
	defer m.flush()

	m.displayPC()
	for {
		m.prompt()

		line, err := m.getLine()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		var c cmd.Selection
		if line = strings.TrimSpace(line); line != "" {
			c, err = cmds.Lookup(line)
			switch {
			case errors.Is(err, cmd.ErrNotFound):
				m.println("Command not found.")
				continue
			case errors.Is(err, cmd.ErrAmbiguous):
				m.println("Command is ambiguous.")
				continue
			case err != nil:
				m.printf("ERROR: %v.\n", err)
				continue
			}
		} else if m.lastCmd != nil {
			c = *m.lastCmd
		}

		if c.Command == nil {
			continue
		}
		h, ok := c.Command.Data.(*command)
		if !ok {
			// a subtree was selected without a subcommand
			m.println("Command is incomplete.")
			continue
		}
		m.lastCmd = &c

		if err := h.handler(m, c); errors.Is(err, errQuit) {
			return nil
		} else if err != nil {
			m.printf("ERROR: %v.\n", err)
		}
	}
}

func (m *Monitor) printf(format string, args ...interface{}) {
	fmt.Fprintf(m.output, format, args...)
	m.flush()
}

func (m *Monitor) println(args ...interface{}) {
	fmt.Fprintln(m.output, args...)
	m.flush()
}

func (m *Monitor) flush() {
	m.output.Flush()
}

func (m *Monitor) getLine() (string, error) {
	if m.input.Scan() {
		return m.input.Text(), nil
	}
	if m.input.Err() != nil {
		return "", m.input.Err()
	}
	return "", io.EOF
}

func (m *Monitor) prompt() {
	if m.interactive {
		m.printf("* ")
	}
}

func (m *Monitor) displayPC() {
	if m.interactive {
		line, _ := cpu.Disassemble(m.gb.MMU, m.gb.CPU.PC)
		m.println(line)
	}
}

// parseAddr resolves a number, label or 16-bit register name.
func (m *Monitor) parseAddr(s string) (uint16, error) {
	r := &m.gb.CPU.Registers
	switch strings.ToLower(s) {
	case "pc", ".":
		return r.PC, nil
	case "sp":
		return r.SP, nil
	case "bc":
		return r.BC(), nil
	case "de":
		return r.DE(), nil
	case "hl":
		return r.HL(), nil
	}
	if v, ok := m.labels[s]; ok {
		return v, nil
	}
	return bits.ParseUint16(s)
}

// parseCount parses an optional positive count, defaulting to def.
func parseCount(args []string, i, def int) (int, error) {
	if len(args) <= i {
		return def, nil
	}
	n, err := bits.ParseNumber(args[i])
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("count must be positive, got %d", n)
	}
	return n, nil
}

func (m *Monitor) cmdHelp(c cmd.Selection) error {
	if len(c.Args) > 0 {
		name := strings.Join(c.Args, " ")
		s, err := cmds.Lookup(name)
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		if h, ok := s.Command.Data.(*command); ok {
			m.printf("Syntax: %s\n    %s.\n", h.usage, h.brief)
			return nil
		}
	}

	m.println("Commands:")
	for _, h := range commands {
		m.printf("    %-15s  %s\n", h.name, h.brief)
	}
	return nil
}

func (m *Monitor) cmdStep(c cmd.Selection) error {
	n, err := parseCount(c.Args, 0, 1)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		cycles := m.gb.Step()
		if !m.interactive || n-i <= m.settings.DisasmLines {
			line, _ := cpu.Disassemble(m.gb.MMU, m.gb.CPU.PC)
			m.printf("%-36s ; %d cycles\n", line, cycles)
		}
	}
	m.settings.NextDisasmAddr = m.gb.CPU.PC
	return nil
}

func (m *Monitor) cmdRun(c cmd.Selection) error {
	n, err := parseCount(c.Args, 0, m.settings.RunCycles)
	if err != nil {
		return err
	}
	m.gb.Run(n)
	m.settings.NextDisasmAddr = m.gb.CPU.PC
	m.printf("Ran %d cycles.\n", n)
	m.displayPC()
	return nil
}

func (m *Monitor) cmdRegisters(c cmd.Selection) error {
	m.println(m.gb.CPU.Registers)
	m.printf("IME=%v HALT=%v CYCLES=%d\n", m.gb.CPU.IME(), m.gb.CPU.Halted(), m.gb.CPU.Cycles())
	return nil
}

func (m *Monitor) cmdDisassemble(c cmd.Selection) error {
	addr := m.settings.NextDisasmAddr
	if len(c.Args) > 0 {
		a, err := m.parseAddr(c.Args[0])
		if err != nil {
			return err
		}
		addr = a
	}
	n, err := parseCount(c.Args, 1, m.settings.DisasmLines)
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		var line cpu.Line
		line, addr = cpu.Disassemble(m.gb.MMU, addr)
		m.println(line)
	}
	m.settings.NextDisasmAddr = addr
	return nil
}

func (m *Monitor) cmdAssemble(c cmd.Selection) error {
	if len(c.Args) < 2 {
		m.println("Syntax: assemble <address> <instruction>")
		return nil
	}
	addr, err := m.parseAddr(c.Args[0])
	if err != nil {
		return err
	}
	b, err := cpu.Assemble(strings.Join(c.Args[1:], " "), addr, m.labels)
	if err != nil {
		return err
	}

	for i, v := range b {
		if !m.gb.MMU.Write(addr+uint16(i), v) {
			return fmt.Errorf("$%04X is not writable", addr+uint16(i))
		}
	}
	m.printf("%04X  %s\n", addr, bits.HexBytes(b))
	m.settings.NextDisasmAddr = addr + uint16(len(b))
	return nil
}

func (m *Monitor) cmdMemory(c cmd.Selection) error {
	addr := m.settings.NextMemDumpAddr
	if len(c.Args) > 0 {
		a, err := m.parseAddr(c.Args[0])
		if err != nil {
			return err
		}
		addr = a
	}
	n, err := parseCount(c.Args, 1, m.settings.MemDumpBytes)
	if err != nil {
		return err
	}

	row := make([]byte, 0, 16)
	for i := 0; i < n; i += 16 {
		row = row[:0]
		for j := 0; j < 16 && i+j < n; j++ {
			row = append(row, m.gb.MMU.Read(addr+uint16(i+j)))
		}
		m.printf("%04X  %-47s  %s\n", addr+uint16(i), bits.HexBytes(row), printable(row))
	}
	m.settings.NextMemDumpAddr = addr + uint16(n)
	return nil
}

func printable(b []byte) string {
	s := make([]byte, len(b))
	for i, c := range b {
		if c < 0x20 || c > 0x7E {
			c = '.'
		}
		s[i] = c
	}
	return string(s)
}

func (m *Monitor) cmdFind(c cmd.Selection) error {
	if len(c.Args) == 0 {
		m.println("Syntax: find <instruction>")
		return nil
	}
	d, err := cpu.FindOpcode(strings.Join(c.Args, " "))
	if err != nil {
		return err
	}

	opcode := bits.Hex8(d.Opcode)
	if d.Prefixed {
		opcode = "$CB " + opcode
	}
	m.printf("%-16s opcode=%s length=%d cycles=%d\n", d.Mnemonic(), opcode, d.Length, d.Cycles)
	return nil
}

func (m *Monitor) cmdLabel(c cmd.Selection) error {
	if len(c.Args) < 2 {
		for name, addr := range m.labels {
			m.printf("    %-16s $%04X\n", name, addr)
		}
		return nil
	}
	addr, err := m.parseAddr(c.Args[1])
	if err != nil {
		return err
	}
	m.labels[c.Args[0]] = addr
	m.printf("Label %s set to $%04X.\n", c.Args[0], addr)
	return nil
}

func (m *Monitor) cmdSet(c cmd.Selection) error {
	if len(c.Args) == 0 {
		m.println("Variables:")
		m.settings.Display(m.output)
		m.flush()
		return nil
	}
	if len(c.Args) == 1 {
		m.println("Syntax: set [<var> <value>]")
		return nil
	}

	key, value := strings.ToLower(c.Args[0]), strings.Join(c.Args[1:], " ")
	r := &m.gb.CPU.Registers
	reg8 := map[string]*uint8{
		"a": &r.A, "f": &r.F, "b": &r.B, "c": &r.C,
		"d": &r.D, "e": &r.E, "h": &r.H, "l": &r.L,
	}
	if p, ok := reg8[key]; ok {
		v, err := bits.ParseUint8(value)
		if err != nil {
			return err
		}
		if key == "f" {
			v &= 0xF0
		}
		*p = v
		m.printf("Register %s set to $%02X.\n", strings.ToUpper(key), v)
		return nil
	}
	if key == "pc" || key == "sp" {
		v, err := m.parseAddr(value)
		if err != nil {
			return err
		}
		if key == "pc" {
			// abandon the instruction in flight
			r.PC = v
			*m.gb.CPU.Cursor() = cpu.Cursor{}
			m.settings.NextDisasmAddr = v
		} else {
			r.SP = v
		}
		m.printf("Register %s set to $%04X.\n", strings.ToUpper(key), v)
		return nil
	}

	var err error
	switch m.settings.Kind(key) {
	case reflect.Invalid:
		err = fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	case reflect.Bool:
		var v bool
		if v, err = strconv.ParseBool(value); err == nil {
			err = m.settings.Set(key, v)
		}
	case reflect.Uint16:
		var v uint16
		if v, err = m.parseAddr(value); err == nil {
			err = m.settings.Set(key, v)
		}
	default:
		var v int
		if v, err = bits.ParseNumber(value); err == nil {
			err = m.settings.Set(key, v)
		}
	}
	if err != nil {
		return err
	}
	m.println("Setting updated.")
	return nil
}

func (m *Monitor) cmdStateSave(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.println("Syntax: state save <filename>")
		return nil
	}
	if err := savestate.WriteFile(c.Args[0], m.gb.Save(), m.settings.CompressStates); err != nil {
		return err
	}
	m.log.Infof("saved state to %s", c.Args[0])
	m.printf("State saved to %s.\n", c.Args[0])
	return nil
}

func (m *Monitor) cmdStateLoad(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.println("Syntax: state load <filename>")
		return nil
	}
	raw, err := savestate.ReadFile(c.Args[0])
	if err != nil {
		return err
	}
	if err := m.gb.Load(raw); err != nil {
		return err
	}
	m.settings.NextDisasmAddr = m.gb.CPU.PC
	m.printf("State loaded from %s.\n", c.Args[0])
	m.displayPC()
	return nil
}

func (m *Monitor) cmdCheatList(c cmd.Selection) error {
	for _, ch := range m.gb.Cheats.Cheats() {
		state := "off"
		if ch.Enabled {
			state = "on"
		}
		m.printf("%-3s %s\n", state, ch.Name)
		for _, code := range ch.Codes {
			m.printf("      %s\n", code)
		}
	}
	return nil
}

func (m *Monitor) cmdCheatAdd(c cmd.Selection) error {
	if len(c.Args) < 2 {
		m.println("Syntax: cheat add <name> <code> [<code>...]")
		return nil
	}
	if _, err := m.gb.Cheats.Add(c.Args[0], c.Args[1:]...); err != nil {
		return err
	}
	m.printf("Cheat %s added.\n", c.Args[0])
	return nil
}

func (m *Monitor) cmdCheatEnable(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.println("Syntax: cheat enable <name>")
		return nil
	}
	if err := m.gb.Cheats.Enable(c.Args[0]); err != nil {
		return err
	}
	m.printf("Cheat %s enabled.\n", c.Args[0])
	return nil
}

func (m *Monitor) cmdCheatDisable(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.println("Syntax: cheat disable <name>")
		return nil
	}
	if err := m.gb.Cheats.Disable(c.Args[0]); err != nil {
		return err
	}
	m.printf("Cheat %s disabled.\n", c.Args[0])
	return nil
}

func (m *Monitor) cmdQuit(c cmd.Selection) error {
	return errQuit
}
