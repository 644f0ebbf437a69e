package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alta-drill/alta/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz in a browser",
	Long: `Serve the quiz as HTML pages. Every browser gets its own quiz session,
kept in memory until it has been idle for --session-ttl.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		ttl, _ := cmd.Flags().GetDuration("session-ttl")

		cfg, err := resolveQuizConfig(cmd)
		if err != nil {
			return err
		}

		opts := web.Options{Config: cfg, SessionTTL: ttl}
		opts.Bank, opts.BankErr = loadBank(cmd)
		if opts.BankErr != nil {
			// Keep serving: every page shows the load error.
			cmd.PrintErrln("Question bank unavailable:", opts.BankErr)
		}

		st := openStoreOrWarn(cmd)
		if st != nil {
			defer st.Close()
			opts.EventRepo = st.EventRepo()
		}

		srv, err := web.New(opts)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", web.DefaultAddr, "Listen address")
	serveCmd.Flags().Duration("session-ttl", web.DefaultSessionTTL, "Forget browser sessions idle for this long")
}
