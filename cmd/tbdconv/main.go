// tbdconv converts the published TBD dictionary PDF into the JSON file
// termserve loads. Run it once per dictionary release.
package main

import (
	"flag"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/termdict/termserve/internal/convert"
	"github.com/termdict/termserve/internal/logger"
)

const defaultPDF = "data/TBD-Bilisim-Sozlugu-Ingilizce-Turkce-2025-08-04.pdf"

func main() {
	pdfPath := flag.String("pdf", defaultPDF, "Path to the TBD dictionary PDF")
	outPath := flag.String("o", filepath.Join("output", "tbd_dictionary.json"), "Output path for the dictionary JSON")
	version := flag.String("version", convert.SourceVersion, "Dictionary release date recorded in the metadata")
	sampleN := flag.Int("sample", 5, "Echo the first N converted pairs")
	debugMode := flag.Bool("d", false, "Toggle debug mode")

	flag.Parse()

	log.SetDefault(logger.New("tbdconv"))
	if *debugMode {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	log.Infof("Converting %s", *pdfPath)
	dict, err := convert.Convert(*pdfPath, *outPath, *version)
	if err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}
	log.Infof("JSON file saved: %s", *outPath)
	log.Infof("Total %d terms successfully converted", dict.Len())

	if *sampleN > 0 {
		terms := dict.Terms()
		n := *sampleN
		if n > len(terms) {
			n = len(terms)
		}
		log.Infof("First %d terms:", n)
		for i, term := range terms[:n] {
			log.Infof("%d. %s -> %s", i+1, term.English, term.Turkish)
		}
	}
}
