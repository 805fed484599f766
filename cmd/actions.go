package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yi-nology/merchant_console/biz/console"
)

var (
	saveForm    console.ConfigForm
	saveKeyFile string
	saveGenKey  bool

	deleteYes bool

	wechatForm console.WeChatForm

	querySysID string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List system configurations",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		s := sess.ctrl.Refresh(cmd.Context())
		if s.Alert.Visible && s.Alert.Severity == console.SeverityError {
			return outcome(cmd.OutOrStdout(), s)
		}
		renderList(cmd.OutOrStdout(), s)
		return nil
	}),
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create or update a system configuration",
	Example: `  merchant-console save --sys-id 6666 --product-id PAYUN --key-file merchant.pem
  merchant-console save --sys-id 6666 --product-id PAYUN --gen-key --env test`,
	Args: cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		ctx := cmd.Context()
		form := saveForm
		if saveKeyFile != "" {
			raw, err := os.ReadFile(saveKeyFile)
			if err != nil {
				return fmt.Errorf("read key file: %w", err)
			}
			form.RSAPrivateKey = string(raw)
		}
		if saveGenKey {
			s := sess.ctrl.GenerateTestKey(ctx)
			if err := outcome(cmd.ErrOrStderr(), s); err != nil {
				return err
			}
			form.RSAPrivateKey = s.ConfigForm.RSAPrivateKey
		}
		return outcome(cmd.OutOrStdout(), sess.ctrl.SaveConfig(ctx, form))
	}),
}

var deleteCmd = &cobra.Command{
	Use:   "delete <sys_id>",
	Short: "Delete a system configuration",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		sysID := args[0]
		confirmed := deleteYes || confirm(cmd.InOrStdin(), cmd.OutOrStdout(), console.DeletePrompt(sysID))
		s := sess.ctrl.Delete(cmd.Context(), sysID, confirmed)
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
			return nil
		}
		return outcome(cmd.OutOrStdout(), s)
	}),
}

var wechatCmd = &cobra.Command{
	Use:   "wechat",
	Short: "Bind a WeChat official account to a merchant",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		return outcome(cmd.OutOrStdout(), sess.ctrl.ConfigureWeChat(cmd.Context(), wechatForm))
	}),
}

var queryCmd = &cobra.Command{
	Use:   "query <huifu_id>",
	Short: "Query the WeChat binding of a merchant",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		ctx := cmd.Context()
		sess.ctrl.Select(ctx, querySysID)
		return outcome(cmd.OutOrStdout(), sess.ctrl.QueryWeChat(ctx, args[0]))
	}),
}

var genKeyCmd = &cobra.Command{
	Use:   "gen-key",
	Short: "Print a throwaway RSA private key for test merchants",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		s := sess.ctrl.GenerateTestKey(cmd.Context())
		if err := outcome(cmd.ErrOrStderr(), s); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.ConfigForm.RSAPrivateKey)
		return nil
	}),
}

var testCmd = &cobra.Command{
	Use:   "test <sys_id>",
	Short: "Ask the backend to validate a saved configuration",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		return outcome(cmd.OutOrStdout(), sess.ctrl.TestConfig(cmd.Context(), args[0]))
	}),
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the configuration list to snapshot storage",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		ctx := cmd.Context()
		if err := outcome(cmd.ErrOrStderr(), sess.ctrl.Refresh(ctx)); err != nil {
			return err
		}
		ref, err := sess.ctrl.ExportSnapshot(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d configs exported to %s\n%s\n", ref.Count, ref.Key, ref.URL)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(listCmd, saveCmd, deleteCmd, wechatCmd, queryCmd, genKeyCmd, testCmd, exportCmd)

	saveCmd.Flags().StringVar(&saveForm.SysID, "sys-id", "", "system id")
	saveCmd.Flags().StringVar(&saveForm.ProductID, "product-id", "", "product id")
	saveCmd.Flags().StringVar(&saveForm.Environment, "env", "test", "environment (production or test)")
	saveCmd.Flags().StringVar(&saveForm.RSAPrivateKey, "key", "", "RSA private key, PEM or bare base64")
	saveCmd.Flags().StringVar(&saveKeyFile, "key-file", "", "read the RSA private key from a file")
	saveCmd.Flags().BoolVar(&saveGenKey, "gen-key", false, "use a generated test key")
	saveCmd.MarkFlagsMutuallyExclusive("key", "key-file", "gen-key")

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")

	wechatCmd.Flags().StringVar(&wechatForm.SysID, "sys-id", "", "system id the merchant belongs to")
	wechatCmd.Flags().StringVar(&wechatForm.HuifuID, "huifu-id", "", "huifu merchant id")
	wechatCmd.Flags().StringVar(&wechatForm.WxWoaAppID, "app-id", "", "WeChat official account app id")
	wechatCmd.Flags().StringVar(&wechatForm.WxWoaPath, "path", "", "WeChat official account authorized path")
	wechatCmd.Flags().StringVar(&wechatForm.FeeType, "fee-type", "", "fee type")

	queryCmd.Flags().StringVar(&querySysID, "sys-id", "", "system id the merchant belongs to")
	_ = queryCmd.MarkFlagRequired("sys-id")
}

// withSession opens a session for the duration of one command.
func withSession(run func(cmd *cobra.Command, args []string, sess *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cfg)
		if err != nil {
			return err
		}
		defer sess.Close()
		return run(cmd, args, sess)
	}
}

// confirm asks a yes/no question; anything but y or yes declines.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
