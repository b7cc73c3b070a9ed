package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/retrosim/mos6502/cpu"
	"github.com/retrosim/mos6502/emulator"
)

func main() {
	var compile string
	var execute string
	var listing bool
	var limit int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to assemble and run")
	flag.StringVar(&execute, "x", "", "Hex instruction stream to execute")
	flag.BoolVar(&listing, "l", false, "Print the assembled listing, do not execute")
	flag.IntVar(&limit, "n", 1000000, "Execution step limit")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	// Execute a bare hex instruction stream against the fresh machine.
	if len(execute) != 0 {
		emu.Cpu.Verbose = verbose
		for _, word := range strings.Fields(execute) {
			inst, err := cpu.DecodeHex(word)
			if err != nil {
				log.Fatalf("%v: %v", word, err)
			}
			err = emu.Cpu.Execute(inst)
			if err != nil {
				log.Fatalf("%v: %v", word, err)
			}
		}
		fmt.Println(emu.Cpu.String())
		return
	}

	if len(compile) == 0 {
		log.Fatalf("%v: nothing to do; use -c or -x", os.Args[0])
	}

	inf, err := os.Open(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	emu.Program = prog

	if listing {
		for addr, inst := range prog.Codes() {
			raw, err := inst.Encode()
			if err != nil {
				log.Fatalf("%v: %v", inst, err)
			}
			var bytes []string
			for _, b := range raw {
				bytes = append(bytes, fmt.Sprintf("%02X", b))
			}
			fmt.Printf("%04X  %-8s  %v\n", addr, strings.Join(bytes, " "), inst)
		}
		return
	}

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	_, err = emu.Run(limit)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(emu.Cpu.String())
}
