package console

import (
	"fmt"

	"github.com/yi-nology/merchant_console/pkg/constants"
)

// Reduce applies the result of an executed command. Every result ends one busy
// period. A follow-up reload, when needed, is returned as the next command and
// identified by token.
func Reduce(s UiState, r Result, token string) (UiState, Command) {
	s.SetBusy(false)

	switch r := r.(type) {
	case ConfigsFetched:
		return applyFetch(s, r), nil

	case ConfigCreated:
		if r.Err != nil {
			s.fail(failureText(constants.MsgSaveFailed, r.Err, constants.MsgNetworkError))
			return s, nil
		}
		s.success(constants.MsgSaved)
		s.ConfigForm = ConfigForm{}
		s.pendingSelect = r.SysID
		return Refresh(s, token)

	case ConfigDeleted:
		if r.Err != nil {
			s.fail(failureText(constants.MsgDeleteFailed, r.Err, constants.MsgNetworkError))
			return s, nil
		}
		s.success(fmt.Sprintf(constants.MsgDeleted, r.SysID))
		if s.Selected == r.SysID {
			s.Selected = ""
		}
		return Refresh(s, token)

	case WeChatConfigured:
		if r.Err != nil {
			s.fail(failureText(constants.MsgWeChatFailed, r.Err, constants.MsgNetworkError))
			return s, nil
		}
		s.success(weChatConfiguredText(r.Response))

	case WeChatQueried:
		if r.Err != nil {
			s.fail(failureText(constants.MsgQueryFailed, r.Err, constants.MsgQueryNetwork))
			return s, nil
		}
		s.success(weChatQueriedText(r.Response))

	case TestKeyGenerated:
		if r.Err != nil {
			s.fail(constants.MsgTestKeyFailed)
			return s, nil
		}
		s.ConfigForm.RSAPrivateKey = r.PrivateKey
		s.info(constants.MsgTestKeyGenerated)

	case ConfigTested:
		if r.Err != nil {
			s.fail(failureText(constants.MsgConfigInvalid, r.Err, constants.MsgNetworkError))
			return s, nil
		}
		s.success(constants.MsgConfigValid)
	}
	return s, nil
}

// applyFetch installs a fetched list unless a newer refresh superseded it.
func applyFetch(s UiState, r ConfigsFetched) UiState {
	if r.Token != s.RefreshToken {
		return s
	}
	s.RefreshToken = ""
	pending := s.pendingSelect
	s.pendingSelect = ""

	if r.Err != nil {
		s.fail(constants.MsgLoadFailed)
		return s
	}

	s.populate(r.Configs)
	if pending != "" && s.HasOption(pending) {
		s.Selected = pending
	} else if !s.HasOption(s.Selected) {
		s.Selected = ""
	}
	return s
}

// Stale reports whether r is a list fetch that a newer refresh superseded.
func Stale(s UiState, r Result) bool {
	fetched, ok := r.(ConfigsFetched)
	return ok && fetched.Token != s.RefreshToken
}
