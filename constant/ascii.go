package constant

import _ "embed"

// Banner is printed above the root command help.
//
//go:embed banner.txt
var Banner string
