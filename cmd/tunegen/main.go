// tunegen renders the tuning artifacts without touching live host settings.
// It reuses the real persister against an alternate root, so generated files
// are byte-identical to what a real run would write.
package main

import (
	"bytes"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/danmuck/mactune/internal/artifact"
	"github.com/danmuck/mactune/internal/config"
	"github.com/danmuck/mactune/internal/mode"
)

func main() {
	root := flag.String("root", ".", "destination root for generated artifacts")
	validate := flag.Bool("validate", false, "byte-compare existing artifacts under root instead of writing")
	configOut := flag.String("config-template", "", "write the starter mactune.toml to this path and exit")
	force := flag.Bool("force", false, "overwrite an existing config template")
	flag.Parse()

	if *configOut != "" {
		if err := config.WriteTemplate(*configOut, *force); err != nil {
			log.Fatal(err)
		}
		log.Printf("Wrote config template to %s", *configOut)
		return
	}

	if *validate {
		if err := validateArtifacts(*root); err != nil {
			log.Fatal(err)
		}
		log.Printf("Validated artifacts under %s", *root)
		return
	}

	p := artifact.Persister{
		Mode: mode.Real,
		Root: *root,
		Out:  os.Stdout,
		Log:  zerolog.Nop(),
	}
	if err := p.PersistAll(); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote artifacts under %s", *root)
}

func validateArtifacts(root string) error {
	for _, a := range []struct {
		dest    string
		content []byte
	}{
		{artifact.SysctlConfPath, artifact.SysctlConf()},
		{artifact.LimitMaxfilesPath, artifact.LimitMaxfilesPlist()},
	} {
		got, err := os.ReadFile(filepath.Join(root, a.dest))
		if err != nil {
			return err
		}
		if !bytes.Equal(got, a.content) {
			return &mismatchError{dest: a.dest}
		}
	}
	return nil
}

type mismatchError struct {
	dest string
}

func (e *mismatchError) Error() string {
	return "artifact diverges from expected content: " + e.dest
}
