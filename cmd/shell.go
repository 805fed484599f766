package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yi-nology/merchant_console/biz/console"
	"github.com/yi-nology/merchant_console/biz/service"
	"github.com/yi-nology/merchant_console/pkg/util"
)

const shellHelp = `commands:
  list | refresh                 reload the configuration list
  select <sys_id>                select a configuration
  form k=v ...                   edit the config form (sys_id product_id env)
  paste                          read an RSA key until an empty line
  genkey                         put a generated test key in the form
  save                           submit the config form
  delete <sys_id>                delete a configuration (asks first)
  test [sys_id]                  validate a configuration
  wechat k=v ...                 bind WeChat (sys_id huifu_id app_id path fee_type)
  query <huifu_id>               query the WeChat binding of the selection
  prefill <query string>         fill the form from a deep link query
  key <chord>                    press a shortcut (ctrl+s, ctrl+r)
  clear | dismiss | state | export | journal | help | quit`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive console session",
	Args:  cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, sess *session) error {
		refresher := service.NewRefresher(sess.ctrl, cfg.Console.RefreshInterval)
		refresher.Start()
		defer refresher.Stop()

		sh := newShell(sess.ctrl, cmd.InOrStdin(), cmd.OutOrStdout())
		renderList(sh.out, sess.ctrl.State())
		return sh.Run(cmd.Context())
	}),
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

type shell struct {
	ctrl *service.Controller
	in   *bufio.Scanner
	out  io.Writer
}

func newShell(ctrl *service.Controller, in io.Reader, out io.Writer) *shell {
	return &shell{ctrl: ctrl, in: bufio.NewScanner(in), out: out}
}

// Run reads commands until quit or end of input.
func (sh *shell) Run(ctx context.Context) error {
	for {
		fmt.Fprint(sh.out, "console> ")
		if !sh.in.Scan() {
			fmt.Fprintln(sh.out)
			return sh.in.Err()
		}
		if !sh.exec(ctx, sh.in.Text()) {
			return nil
		}
	}
}

// exec runs one command line and reports whether the session continues.
func (sh *shell) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}

	var s console.UiState
	switch name {
	case "quit", "exit":
		return false
	case "help", "?":
		fmt.Fprintln(sh.out, shellHelp)
		return true
	case "list", "refresh":
		s = sh.ctrl.Refresh(ctx)
		renderList(sh.out, s)
	case "state":
		s = sh.ctrl.State()
		renderList(sh.out, s)
		sh.printForm(s)
		return true
	case "select":
		s = sh.ctrl.Select(ctx, arg(0))
	case "form":
		form := sh.ctrl.State().ConfigForm
		for k, v := range pairs(args) {
			switch k {
			case "sys_id":
				form.SysID = v
			case "product_id":
				form.ProductID = v
			case "env", "environment":
				form.Environment = v
			case "key", "rsa_private_key":
				form.RSAPrivateKey = v
			}
		}
		s = sh.ctrl.EditConfigForm(form)
		sh.printForm(s)
	case "paste":
		s = sh.ctrl.PasteRSAKey(sh.readBlock())
		sh.printForm(s)
	case "genkey":
		s = sh.ctrl.GenerateTestKey(ctx)
	case "save":
		s = sh.ctrl.SubmitConfigForm(ctx)
	case "delete":
		id := arg(0)
		confirmed := id != "" && sh.ask(console.DeletePrompt(id))
		s = sh.ctrl.Delete(ctx, id, confirmed)
		if !confirmed {
			fmt.Fprintln(sh.out, "cancelled")
		}
	case "test":
		s = sh.ctrl.TestConfig(ctx, arg(0))
	case "wechat":
		var form console.WeChatForm
		for k, v := range pairs(args) {
			switch k {
			case "sys_id":
				form.SysID = v
			case "huifu_id":
				form.HuifuID = v
			case "app_id", "wx_woa_app_id":
				form.WxWoaAppID = v
			case "path", "wx_woa_path":
				form.WxWoaPath = v
			case "fee_type":
				form.FeeType = v
			}
		}
		s = sh.ctrl.ConfigureWeChat(ctx, form)
	case "query":
		s = sh.ctrl.QueryWeChat(ctx, arg(0))
	case "prefill":
		values, err := url.ParseQuery(strings.TrimPrefix(arg(0), "?"))
		if err != nil {
			fmt.Fprintf(sh.out, "[error] %v\n", err)
			return true
		}
		s = sh.ctrl.Prefill(values)
		sh.printForm(s)
	case "key":
		var handled bool
		s, handled = sh.ctrl.Shortcut(ctx, strings.Join(args, ""))
		if !handled {
			fmt.Fprintf(sh.out, "no action bound to %q\n", strings.Join(args, " "))
			return true
		}
	case "clear":
		s = sh.ctrl.ClearForm()
	case "dismiss":
		sh.ctrl.DismissAlert()
		return true
	case "export":
		ref, err := sh.ctrl.ExportSnapshot(ctx)
		if err != nil {
			fmt.Fprintf(sh.out, "[error] %v\n", err)
			return true
		}
		fmt.Fprintf(sh.out, "%d configs exported to %s\n", ref.Count, ref.URL)
		return true
	case "journal":
		records, err := sh.ctrl.Journal(ctx, 10)
		if err != nil {
			fmt.Fprintf(sh.out, "[error] %v\n", err)
			return true
		}
		for _, r := range records {
			fmt.Fprintf(sh.out, "%s %s %s %s\n", r.Command, r.SysID, r.Outcome, firstLine(r.Message))
		}
		return true
	default:
		fmt.Fprintf(sh.out, "unknown command %q, try help\n", name)
		return true
	}
	renderAlert(sh.out, s)
	return true
}

func (sh *shell) printForm(s console.UiState) {
	f := s.ConfigForm
	key := "(empty)"
	if f.RSAPrivateKey != "" {
		key = fmt.Sprintf("(%d base64 chars)", len(util.StripRSAPrivateKey(f.RSAPrivateKey)))
	}
	fmt.Fprintf(sh.out, "form: sys_id=%s product_id=%s env=%s key=%s\n", f.SysID, f.ProductID, f.Environment, key)
}

// readBlock collects lines until an empty one or end of input.
func (sh *shell) readBlock() string {
	fmt.Fprintln(sh.out, "paste the key, finish with an empty line:")
	var lines []string
	for sh.in.Scan() {
		line := sh.in.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (sh *shell) ask(prompt string) bool {
	fmt.Fprintf(sh.out, "%s [y/N]: ", prompt)
	if !sh.in.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(sh.in.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

// pairs splits k=v arguments. Arguments without "=" are ignored.
func pairs(args []string) map[string]string {
	out := make(map[string]string, len(args))
	for _, a := range args {
		if k, v, ok := strings.Cut(a, "="); ok {
			out[strings.ToLower(k)] = v
		}
	}
	return out
}
