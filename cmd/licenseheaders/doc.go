// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Licenseheaders adds or updates copyright and license headers in source
files.

It walks a directory tree, picks a comment style for each file by its
extension and splices a header rendered from a template with ${name}
placeholders. Lines that must stay first, like shebangs, Python coding
declarations and XML declarations, are kept in place. Existing headers
are replaced (or kept intact with -add-only), and years found in them
are carried forward unless -years or -refresh-years says otherwise.
With -years and no -tmpl only the year token of existing headers is
rewritten.

# Usage

	$ licenseheaders [flags...]

For example, to stamp an MIT header on everything under the current
directory:

	$ licenseheaders -tmpl mit -owner "Jane Doe"
*/
package main

import (
	_ "embed"

	"go.astrophena.name/licenseheaders/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
