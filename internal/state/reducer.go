package state

import "CreditScoreZ/internal/model"

// Reduce применяет действие к состоянию и возвращает новое состояние.
// Функция чистая: входной State не изменяется.
func Reduce(s State, a Action) State {
	s = s.clone()
	switch a := a.(type) {
	case WalletConnected:
		s.WalletConnected = true
		s.Account = a.Account
		if !s.LoadedOnce {
			s.Loading = true
		}
	case WalletDisconnected:
		// загрузки, начатые до отключения, больше не применяются
		epoch := s.LoadEpoch + 1
		s = State{History: s.History, LoadEpoch: epoch, AppliedEpoch: epoch}
	case FHEInitRequested:
		if s.WalletConnected && !s.FHEInitialized && !s.FHEInitializing {
			s.FHEInitializing = true
		}
	case FHEInitFinished:
		s.FHEInitializing = false
		s.FHEInitialized = a.OK
	case ContractResolved:
		s.ContractAddress = a.Address
	case LoadStarted:
		s.LoadEpoch++
		s.Refreshing = true
	case RecordsLoaded:
		// ответ старой загрузки, когда уже применён более новый, отбрасывается
		if a.Epoch <= s.AppliedEpoch {
			break
		}
		s.AppliedEpoch = a.Epoch
		s.Records = make([]model.Record, len(a.Records))
		copy(s.Records, a.Records)
		s.finishLoad(a.Epoch)
		if sel, ok := s.Selected(); ok && sel.IsVerified {
			// значение в леджере заменяет локально расшифрованное
			s.LocalDecrypted = nil
		}
	case LoadFailed:
		if a.Epoch <= s.AppliedEpoch {
			break
		}
		if !s.LoadedOnce {
			s.Records = []model.Record{}
		}
		s.finishLoad(a.Epoch)
	case SearchChanged:
		s.Search = a.Term
	case CreateOpened:
		s.ShowCreate = true
	case CreateClosed:
		s.ShowCreate = false
	case RecordSelected:
		if s.SelectedID != a.ID {
			s.LocalDecrypted = nil
		}
		s.SelectedID = a.ID
	case DetailClosed:
		s.SelectedID = ""
		s.LocalDecrypted = nil
	case LocalDecrypted:
		if s.SelectedID == a.ID {
			v := a.Value
			s.LocalDecrypted = &v
		}
	case LocalDecryptCleared:
		s.LocalDecrypted = nil
	case HistoryAppended:
		s.History = append(s.History, a.Entry)
	}
	return s
}

func (s *State) finishLoad(epoch uint64) {
	s.Loading = false
	s.LoadedOnce = true
	if epoch >= s.LoadEpoch {
		s.Refreshing = false
	}
}
