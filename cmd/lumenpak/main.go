// Copyright (c) 2020 lumen3d
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"errors"
	"flag"
	"os"
	"os/user"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lumen3d/lumen/utility/pak"
)

func init() {
	u, err := user.Current()
	if err != nil {
		currentUserName = "unknown"
		return
	}
	currentUserName = u.Name
}

var (
	currentUserName string
	author          = flag.String("author", currentUserName, "Set the author of the archive when compressing")
	version         = flag.Int64("version", 1, "Archive version number to create it with")
	extract         = flag.String("e", "", "Extract the archive given")
	compress        = flag.String("c", "", "Compress the given file/folder")
	dstFile         = flag.String("f", "out.pak", "Destination file")
	dstDir          = flag.String("d", ".", "Destination directory for extraction")
)

func main() {
	flag.Parse()

	if *extract != "" && *compress != "" {
		log.Fatal("only one operation at a time")
	}

	switch {
	case *compress != "":
		if err := compressFiles(); err != nil {
			log.Fatal(err)
		}
	case *extract != "":
		if err := extractFiles(); err != nil {
			log.Fatal(err)
		}
	default:
		flag.PrintDefaults()
	}
}

func compressFiles() error {
	if _, err := os.Stat(*dstFile); err == nil {
		return errors.New("destination file exists, will not overwrite")
	}

	dst, err := os.Create(*dstFile)
	if err != nil {
		return err
	}
	defer dst.Close()

	builder := pak.NewBuilder(pak.Header{
		Author:      *author,
		DateCreated: time.Now().Unix(),
		Version:     *version,
	})

	if err := filepath.Walk(*compress, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		rel, err := filepath.Rel(*compress, path)
		if err != nil {
			rel = path
		}
		return builder.Add(rel, f)
	}); err != nil {
		return err
	}

	if _, err := builder.WriteTo(dst); err != nil {
		return err
	}
	log.WithField("file", *dstFile).Info("Archive written")
	return nil
}

func extractFiles() error {
	src, err := os.Open(*extract)
	if err != nil {
		return err
	}
	defer src.Close()

	archive, err := pak.Open(src)
	if err != nil {
		return err
	}

	for _, entry := range archive.Index() {
		data, err := archive.ReadAll(entry.Name)
		if err != nil {
			return err
		}
		target := filepath.Join(*dstDir, entry.Name)
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := writeFile(target, data); err != nil {
			return err
		}
		log.WithField("file", target).Info("Extracted")
	}
	return nil
}

func writeFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(data)
	return err
}
