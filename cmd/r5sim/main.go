// Command r5sim boots a boot-ROM image against the default RV32I
// machine and runs it to completion or fatal error. This is the thin
// glue that sits outside the interpreter core itself: flag
// parsing, default machine construction, and the one-time boot-ROM
// load.
package main

import (
	"flag"
	"log"

	"github.com/rvsim/r5sim/pkg/core"
	"github.com/rvsim/r5sim/pkg/device/uart"
	"github.com/rvsim/r5sim/pkg/device/vdisk"
	"github.com/rvsim/r5sim/pkg/machine"
)

func main() {
	log.SetFlags(0)

	bromPath := flag.String("brom", "", "boot ROM image to load")
	vdiskPath := flag.String("vdisk", "", "backing file for the virtual disk device")
	enableUART := flag.Bool("uart", false, "attach a TCP-backed UART console")
	trace := flag.Bool("trace", false, "enable per-instruction trace logging")
	verbose := flag.Bool("v", false, "print the machine layout before booting")
	flag.Parse()

	if *bromPath == "" {
		log.Fatal("usage: r5sim -brom <image> [-vdisk <file>] [-uart] [-trace] [-v]")
	}

	mach := machine.NewDefault()

	if *vdiskPath != "" {
		mach.AttachDevice(vdisk.Load(machine.DefaultVDiskIOOffset, *vdiskPath))
	}

	var console *uart.UART
	if *enableUART {
		var err error
		console, err = uart.AcceptConn(machine.DefaultUARTIOOffset)
		if err != nil {
			log.Fatal(err)
		}
		defer console.Close()
		mach.AttachDevice(console)
	}

	machine.LoadBROM(mach, *bromPath)

	if *verbose {
		log.Print(mach.Describe())
	}

	c := core.New("hart0", mach)
	c.Tracing = *trace
	if console != nil {
		c.OnStep = func() {
			if err := console.Poll(); err != nil {
				log.Printf("uart: %v", err)
			}
		}
	}

	c.Execute(machine.DefaultBROMBase)
}
