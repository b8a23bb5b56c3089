// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// tca9534 reads and drives a TCA9534 I/O expander from the command line.
package main

import "github.com/GermanBionicSystems/tca9534/cmd/tca9534/cmd"

func main() {
	cmd.Execute()
}
