package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	contractx "github.com/tanpawarit/krishi-mitra/agent/contract"
)

const dateLayout = "2006-01-02"

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the farmers, crops and chat_history tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "database ready")
			return nil
		},
	}
}

func newFarmerCommand() *cobra.Command {
	farmerCmd := &cobra.Command{
		Use:   "farmer",
		Short: "Manage farmer profiles",
	}

	var phone, name, location string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Register a farmer, or print the existing one for the phone number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			farmer, err := store.UpsertFarmer(cmd.Context(), phone, name, location)
			if err != nil {
				return err
			}
			return printJSON(cmd, farmer)
		},
	}
	addCmd.Flags().StringVar(&phone, "phone", "", "phone number (required)")
	addCmd.Flags().StringVar(&name, "name", "", "farmer name")
	addCmd.Flags().StringVar(&location, "location", "", "village or district")
	_ = addCmd.MarkFlagRequired("phone")

	farmerCmd.AddCommand(addCmd)
	return farmerCmd
}

func newCropCommand() *cobra.Command {
	cropCmd := &cobra.Command{
		Use:   "crop",
		Short: "Manage farmer crops",
	}

	var (
		farmerID         int64
		name             string
		planted, harvest string
		acres            float64
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a crop for a farmer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			crop := contractx.NewCrop{CropName: name}

			var err error
			if crop.PlantingDate, err = parseDate(planted); err != nil {
				return fmt.Errorf("--planted: %w", err)
			}
			if crop.ExpectedHarvestDate, err = parseDate(harvest); err != nil {
				return fmt.Errorf("--harvest: %w", err)
			}
			if cmd.Flags().Changed("acres") {
				crop.AreaAcres = &acres
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.AddCrop(cmd.Context(), farmerID, crop)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "crop %d added\n", id)
			return nil
		},
	}
	addCmd.Flags().Int64Var(&farmerID, "farmer", 0, "farmer id (required)")
	addCmd.Flags().StringVar(&name, "name", "", "crop name (required)")
	addCmd.Flags().StringVar(&planted, "planted", "", "planting date, YYYY-MM-DD")
	addCmd.Flags().StringVar(&harvest, "harvest", "", "expected harvest date, YYYY-MM-DD")
	addCmd.Flags().Float64Var(&acres, "acres", 0, "area in acres")
	_ = addCmd.MarkFlagRequired("farmer")
	_ = addCmd.MarkFlagRequired("name")

	cropCmd.AddCommand(addCmd)
	return cropCmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
