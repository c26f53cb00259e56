package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmartin-sub/bookspine/internal/input"
	"github.com/mmartin-sub/bookspine/internal/spine"
	"github.com/mmartin-sub/bookspine/pkg/types"
)

var spineCmd = &cobra.Command{
	Use:   "spine",
	Short: "Calculate book spine width",
	Long: `Spine calculates the physical spine width of a book from its page count,
paper stock, and binding type, using a printer-service configuration.
The page count comes from --page-count or is read from a PDF via --pdf.`,
	RunE: runSpine,
}

func init() {
	spineCmd.Flags().Int("page-count", 0, "total page count")
	spineCmd.Flags().String("pdf", "", "PDF file to read the page count from")
	spineCmd.Flags().String("paper-type", "", "paper stock: MCG, MCS, ECB, or OFF")
	spineCmd.Flags().String("binding-type", "", "binding: Softcover Perfect Bound, Hardcover Casewrap, or Hardcover Linen")
	spineCmd.Flags().Float64("paper-weight", 0, "paper weight in gsm (50-300)")
	spineCmd.Flags().String("printer-service", "", "printer service configuration (default: default)")
	spineCmd.Flags().Int("dpi", 0, "DPI for pixel conversion (default 300)")
	spineCmd.Flags().Float64("manual-override", -1, "replace the calculated width with this value in mm")
	spineCmd.Flags().String("unit-system", "", "preferred display units: metric or imperial")
	spineCmd.Flags().String("format", "text", "output format: text or json")
	spineCmd.Flags().Bool("list-services", false, "list available printer services and exit")

	rootCmd.AddCommand(spineCmd)
}

func runSpine(cmd *cobra.Command, args []string) error {
	loader := &spine.Loader{Dir: viper.GetString("spine.config_dir")}

	if list, _ := cmd.Flags().GetBool("list-services"); list {
		services, err := loader.Services()
		if err != nil {
			return err
		}
		fmt.Println(strings.Join(services, "\n"))
		return nil
	}

	pageCount, _ := cmd.Flags().GetInt("page-count")
	pdfPath, _ := cmd.Flags().GetString("pdf")
	if pageCount > 0 && pdfPath != "" {
		return fmt.Errorf("--page-count and --pdf are mutually exclusive")
	}
	if pdfPath != "" {
		n, err := input.PDFPageCount(pdfPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Read %d pages from %s\n", n, pdfPath)
		pageCount = n
	}
	if pageCount <= 0 {
		return fmt.Errorf("provide --page-count or --pdf")
	}

	paperType, _ := cmd.Flags().GetString("paper-type")
	bindingType, _ := cmd.Flags().GetString("binding-type")
	paperWeight, _ := cmd.Flags().GetFloat64("paper-weight")
	unitSystem, _ := cmd.Flags().GetString("unit-system")

	meta, err := types.NewBookMetadata(types.BookMetadata{
		PageCount:   pageCount,
		PaperType:   paperType,
		BindingType: bindingType,
		PaperWeight: paperWeight,
		UnitSystem:  unitSystem,
	})
	if err != nil {
		return err
	}

	service, _ := cmd.Flags().GetString("printer-service")
	if service == "" {
		service = viper.GetString("spine.default_service")
	}
	dpi, _ := cmd.Flags().GetInt("dpi")
	if dpi == 0 {
		dpi = viper.GetInt("spine.dpi")
	}

	opts := spine.Options{PrinterService: service, DPI: dpi}
	if cmd.Flags().Changed("manual-override") {
		override, _ := cmd.Flags().GetFloat64("manual-override")
		opts.ManualOverride = &override
	}

	calc := &spine.Calculator{Loader: loader}
	result, err := calc.Calculate(meta, opts)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "text":
		return spine.RenderText(os.Stdout, result)
	case "json":
		return spine.RenderJSON(os.Stdout, result)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}
}
