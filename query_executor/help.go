package executor

// CommandHelp describes the input grammar accepted by ProcessLine. It is
// printed by the archive binary's usage text.
const CommandHelp = `Input commands, one per line:
  create type <name> <field-count> <pk-index> <field> <int|str> ...
  create record <type> <value> ...
  search record <type> <key>
  delete record <type> <key>
Blank lines and lines starting with # are skipped.

Lines are parsed strictly. An unknown command, a count or pk index that is
not an integer, or extra words after the key of search and delete are all
reported in the output file as
  Line N: Failed - Invalid operation format: <reason>
and logged as a failure in the status log. Nothing is ignored silently.
`
