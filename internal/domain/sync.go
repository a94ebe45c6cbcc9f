package domain

import "time"

// SyncWindow é o intervalo inclusivo de datas buscado na fonte
type SyncWindow struct {
	StartDate time.Time
	EndDate   time.Time
}

// SyncResult resume a sincronização de um usuário
type SyncResult struct {
	UserID      string    `json:"userId"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Rows        int       `json:"rows"`
	Partitions  int       `json:"partitions"`
	CompletedAt time.Time `json:"completedAt"`
}

// SyncFailure registra a falha de um usuário durante a sincronização em lote
type SyncFailure struct {
	UserID string `json:"userId"`
	Error  string `json:"error"`
}

// SyncReport resume uma execução de sincronização de todos os usuários
type SyncReport struct {
	RunID      string         `json:"runId"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt time.Time      `json:"finishedAt"`
	Users      int            `json:"users"`
	Succeeded  []*SyncResult  `json:"succeeded"`
	Failed     []*SyncFailure `json:"failed"`
}
