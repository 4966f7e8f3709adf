// Command trapsim drives the trap dispatcher on an emulated core from the
// keyboard or from a key script.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-tty"
	ktty "github.com/vedadux/sweb/kernel/driver/tty"
	"github.com/vedadux/sweb/kernel/driver/video/console"
	"github.com/vedadux/sweb/kernel/kfmt"
	"github.com/vedadux/sweb/kernel/sim"
)

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[trapsim] error: %s\n", err.Error())
	os.Exit(1)
}

// crlfWriter translates "\n" into "\r\n" for terminals in raw mode.
type crlfWriter struct {
	w io.Writer
}

func (cw crlfWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(cw.w, strings.ReplaceAll(string(p), "\n", "\r\n")); err != nil {
		return 0, err
	}
	return len(p), nil
}

func main() {
	ttyPath := flag.String("tty", "", "terminal device to read keys from (defaults to the controlling terminal)")
	pngPath := flag.String("png", "", "render the console into a framebuffer and save it to this PNG file on exit")
	debug := flag.String("debug", "", "comma separated debug channels to enable (all, none, pagefault, a_interrupts, syscall, scheduler, loader)")
	script := flag.String("script", "", "run the given key sequence instead of reading the terminal")
	faultAddr := flag.String("fault", "0x01000000", "address used by the data and prefetch abort keys")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: trapsim [options]")
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
	}
	flag.Parse()

	addr, err := strconv.ParseUint(*faultAddr, 0, 32)
	if err != nil {
		exit(fmt.Errorf("invalid fault address %q: %w", *faultAddr, err))
	}

	if *debug != "" {
		if kerr := kfmt.SetChannels(*debug); kerr != nil {
			exit(kerr)
		}
	}

	var (
		out   io.Writer = os.Stdout
		next  func() (rune, error)
		term  *tty.TTY
		reset func() error
	)

	if *script != "" {
		keys := []rune(*script)
		next = func() (rune, error) {
			if len(keys) == 0 {
				return 0, io.EOF
			}
			key := keys[0]
			keys = keys[1:]
			return key, nil
		}
	} else {
		if *ttyPath != "" {
			term, err = tty.OpenDevice(*ttyPath)
		} else {
			term, err = tty.Open()
		}
		if err != nil {
			exit(err)
		}
		defer term.Close()

		reset = term.MustRaw()
		defer reset()

		out = crlfWriter{w: term.Output()}
		next = term.ReadRune
	}

	kfmt.SetOutputSink(out)

	var (
		display console.Device
		fb      *console.Framebuffer
	)
	if *pngPath != "" {
		fb = console.NewFramebuffer(640, 480)
		display = fb
	} else {
		display = console.NewText(80, 25)
	}

	// Process output is echoed on the terminal and on the console below the
	// heartbeat row.
	procOut := io.MultiWriter(out, ktty.NewVt(display, 1))

	s := newSession(sim.NewMachine(display, procOut), out, uint32(addr))
	if *script == "" {
		s.usage()
	}

	if err = s.run(next); err != nil {
		exit(err)
	}

	if fb != nil {
		if err = fb.SavePNG(*pngPath); err != nil {
			exit(err)
		}
	}
}
