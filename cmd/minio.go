package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hzfm/catalog"
)

var minioFile string

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "Publish a metadata table to the bucket",
	Long:  `Validate a CSV metadata table and upload it as MINIO_BUCKET/MINIO_OBJECT, the object read when METADATA_SOURCE=minio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(minioFile)
		if err != nil {
			return err
		}
		defer f.Close()

		client, err := catalog.NewMinioClient(cfg)
		if err != nil {
			return err
		}
		src := catalog.NewMinioSource(client, cfg.MinioBucket, cfg.MinioObject)

		n, err := src.Upload(cmd.Context(), f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "uploaded %d tracks to %s\n", n, src.Name())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(minioCmd)

	minioCmd.Flags().StringVarP(&minioFile, "file", "f", "", "CSV file with public_id,bpm,hz_low,hz_high,key_name columns")
	minioCmd.MarkFlagRequired("file")

	minioCmd.Example = `  hzfm minio -f tracks.csv`
}
