// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command lnqstress stress-tests the lnq queues and replays the two-round
// demo.
package main

import "os"

func main() {
	if err := CmdStress().Execute(); err != nil {
		os.Exit(1)
	}
}
