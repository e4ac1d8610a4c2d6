package monitor

import "github.com/beevik/cmd"

// command is stored as the data of every entry in the command tree.
type command struct {
	name    string
	brief   string
	usage   string
	handler func(*Monitor, cmd.Selection) error
}

var (
	cmds     *cmd.Tree
	commands []*command
)

func init() {
	cmds = cmd.NewTree(cmd.TreeDescriptor{Name: "gbcore"})
	add := func(t *cmd.Tree, prefix string, c *command) {
		t.AddCommand(cmd.CommandDescriptor{
			Name:  c.name,
			Brief: c.brief,
			Usage: c.usage,
			Data:  c,
		})
		c.name = prefix + c.name
		commands = append(commands, c)
	}

	add(cmds, "", &command{
		name:    "help",
		brief:   "Display help for a command",
		usage:   "help [<command>]",
		handler: (*Monitor).cmdHelp,
	})
	add(cmds, "", &command{
		name:    "step",
		brief:   "Step the CPU by one or more instructions",
		usage:   "step [<count>]",
		handler: (*Monitor).cmdStep,
	})
	add(cmds, "", &command{
		name:    "run",
		brief:   "Run for a number of machine cycles",
		usage:   "run [<cycles>]",
		handler: (*Monitor).cmdRun,
	})
	add(cmds, "", &command{
		name:    "registers",
		brief:   "Display the CPU registers",
		usage:   "registers",
		handler: (*Monitor).cmdRegisters,
	})
	add(cmds, "", &command{
		name:    "disassemble",
		brief:   "Disassemble code",
		usage:   "disassemble [<address>] [<lines>]",
		handler: (*Monitor).cmdDisassemble,
	})
	add(cmds, "", &command{
		name:    "assemble",
		brief:   "Assemble an instruction into memory",
		usage:   "assemble <address> <instruction>",
		handler: (*Monitor).cmdAssemble,
	})
	add(cmds, "", &command{
		name:    "memory",
		brief:   "Dump memory",
		usage:   "memory [<address>] [<bytes>]",
		handler: (*Monitor).cmdMemory,
	})
	add(cmds, "", &command{
		name:    "find",
		brief:   "Look up an instruction in the catalog",
		usage:   "find <instruction>",
		handler: (*Monitor).cmdFind,
	})
	add(cmds, "", &command{
		name:    "label",
		brief:   "Define a label for the assembler",
		usage:   "label <name> <address>",
		handler: (*Monitor).cmdLabel,
	})
	add(cmds, "", &command{
		name:    "set",
		brief:   "Set a register or setting",
		usage:   "set [<var> <value>]",
		handler: (*Monitor).cmdSet,
	})
	add(cmds, "", &command{
		name:    "quit",
		brief:   "Quit the monitor",
		usage:   "quit",
		handler: (*Monitor).cmdQuit,
	})

	st := cmds.AddSubtree(cmd.TreeDescriptor{Name: "state", Brief: "Savestate commands"})
	add(st, "state ", &command{
		name:    "save",
		brief:   "Save the machine state to a file",
		usage:   "state save <filename>",
		handler: (*Monitor).cmdStateSave,
	})
	add(st, "state ", &command{
		name:    "load",
		brief:   "Load the machine state from a file",
		usage:   "state load <filename>",
		handler: (*Monitor).cmdStateLoad,
	})

	ch := cmds.AddSubtree(cmd.TreeDescriptor{Name: "cheat", Brief: "Cheat code commands"})
	add(ch, "cheat ", &command{
		name:    "list",
		brief:   "List loaded cheats",
		usage:   "cheat list",
		handler: (*Monitor).cmdCheatList,
	})
	add(ch, "cheat ", &command{
		name:    "add",
		brief:   "Add a cheat from Game Genie or GameShark codes",
		usage:   "cheat add <name> <code> [<code>...]",
		handler: (*Monitor).cmdCheatAdd,
	})
	add(ch, "cheat ", &command{
		name:    "enable",
		brief:   "Enable a cheat",
		usage:   "cheat enable <name>",
		handler: (*Monitor).cmdCheatEnable,
	})
	add(ch, "cheat ", &command{
		name:    "disable",
		brief:   "Disable a cheat",
		usage:   "cheat disable <name>",
		handler: (*Monitor).cmdCheatDisable,
	})

	cmds.AddShortcut("?", "help")
	cmds.AddShortcut("s", "step")
	cmds.AddShortcut("r", "registers")
	cmds.AddShortcut("d", "disassemble")
	cmds.AddShortcut("a", "assemble")
	cmds.AddShortcut("m", "memory")
	cmds.AddShortcut("q", "quit")
}
