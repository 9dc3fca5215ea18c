/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// vrtdump reads a file of back-to-back VRT packets and prints a
// one-line summary per packet, the way ptpcheck and ziffy summarize
// their own wire captures.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	protocol "github.com/vrtcodec/vrt/vrt/protocol"
	"github.com/vrtcodec/vrt/vrt/packet"
)

var (
	inputPath string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "vrtdump",
	Short: "Summarize a file of back-to-back VITA 49.2 VRT packets",
	RunE:  run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&inputPath, "file", "f", "", "path to a raw VRT packet stream (required)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	_ = rootCmd.MarkFlagRequired("file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(_ *cobra.Command, _ []string) error {
	log.SetLevel(log.InfoLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %q: %w", inputPath, err)
	}

	r := &streamReader{buf: data}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetColWidth(20)
	table.SetHeader([]string{"#", "kind", "type", "stream id", "size (words)", "class id", "timestamp"})

	for i := 0; ; i++ {
		v, err := r.ReadPacket()
		if err == errStreamDone {
			break
		}
		if err != nil {
			log.Errorf("packet %d: %v", i, err)
			break
		}
		table.Append(summarizeRow(i, v))
	}
	table.Render()
	return nil
}

func summarizeRow(i int, v packet.PacketVariant) []string {
	kind := v.Kind.String()
	if v.Kind == packet.KindContext {
		kind = color.CyanString(kind)
	} else {
		kind = color.GreenString(kind)
	}

	switch v.Kind {
	case packet.KindData:
		d := v.Data
		streamID, hasStreamID := d.StreamID()
		classID, hasClassID := d.ClassID()
		ts, hasTS := d.Timestamp()
		return []string{
			fmt.Sprintf("%d", i),
			kind,
			d.Header.Type.String(),
			streamIDCell(streamID, hasStreamID),
			fmt.Sprintf("%d", d.SizeWords()),
			classIDCell(classID, hasClassID),
			timestampCell(ts, hasTS),
		}
	case packet.KindContext:
		c := v.Context
		streamID, hasStreamID := c.StreamID()
		classID, hasClassID := c.ClassID()
		ts, hasTS := c.Timestamp()
		return []string{
			fmt.Sprintf("%d", i),
			kind,
			c.Header.Type.String(),
			streamIDCell(streamID, hasStreamID),
			fmt.Sprintf("%d", c.SizeWords()),
			classIDCell(classID, hasClassID),
			timestampCell(ts, hasTS),
		}
	default:
		return []string{fmt.Sprintf("%d", i), kind, "-", "-", "-", "-", "-"}
	}
}

func streamIDCell(id uint32, present bool) string {
	if !present {
		return "-"
	}
	return fmt.Sprintf("%#08x", id)
}

func classIDCell(c protocol.ClassID, present bool) string {
	if !present {
		return "-"
	}
	return c.String()
}

func timestampCell(ts protocol.Timestamp, present bool) string {
	if !present {
		return "-"
	}
	return ts.String()
}

// errStreamDone signals a clean end of input to streamReader's caller.
var errStreamDone = fmt.Errorf("vrtdump: end of stream")

// streamReader implements packet.Reader over an in-memory byte slice
// of back-to-back VRT packets, framing each one purely from its own
// header size field (VRT carries no outer length prefix).
type streamReader struct {
	buf []byte
	off int
}

func (r *streamReader) ReadPacket() (packet.PacketVariant, error) {
	if r.off >= len(r.buf) {
		return packet.PacketVariant{}, errStreamDone
	}
	v, err := packet.ParsePacket(r.buf[r.off:])
	if err != nil {
		return packet.PacketVariant{}, err
	}
	var sizeWords int
	switch v.Kind {
	case packet.KindData:
		sizeWords = v.Data.SizeWords()
	case packet.KindContext:
		sizeWords = v.Context.SizeWords()
	}
	r.off += protocol.WordsToBytes(sizeWords)
	return v, nil
}
