// Command blogctl performs operator tasks against the blog database.
package main

import (
	"fmt"
	"os"

	"blog_backend/internal/config"
	platformdb "blog_backend/internal/platform/db"

	"gorm.io/gorm"
)

func main() {
	config.LoadDotEnv()

	root := newRootCmd(func() (*gorm.DB, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		return platformdb.Open(cfg.DB)
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
