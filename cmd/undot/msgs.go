package main

// Message constants for the undot command line
const (
	MsgRootShort = "Run a program with its dotfiles relocated out of home"
	MsgRootLong  = `undot keeps your home directory free of the dotfiles a program
scatters there. On the first wrapped run it watches which dotfiles the
program creates, records them, and moves them into an XDG data
directory. On every later run it puts them back before launching the
program and moves them out again once it exits, so the program never
notices and your home stays clean.

undot exits with the wrapped program's exit code; its own failures
exit 1. To wrap a program whose name matches an undot subcommand, call
it by path (e.g. /usr/bin/list).`
	MsgRootExample = `  undot irssi
  undot --name vim-nightly ~/src/vim/bin/vim
  undot list`

	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagName       = "Override the program identity used for storage"
	MsgFlagStorageDir = "Override the storage root (default: XDG data dir)"

	MsgListShort   = "List programs with relocated dotfiles"
	MsgForgetShort = "Restore a program's dotfiles to home for good and drop its record"
	MsgForgetLong  = `Forget moves every entry undot holds for a program back into your
home directory and removes the program from the registry. The usual
restore safety applies: if any entry already exists in home, nothing
is moved.`
	MsgGenconfigShort = "Print the default configuration as TOML"
	MsgVersionShort   = "Print version information"

	MsgNoPrograms = "no programs registered yet"
)
