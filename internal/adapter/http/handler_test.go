package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tavola/internal/app/award"
	"tavola/internal/app/history"
	"tavola/internal/app/ports"
	"tavola/internal/app/progress"
	"tavola/internal/domain/progression"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func TestRequireMemberID_FromHeader(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(memberIDHeader, "member-1")

	memberID, err := requireMemberID(ctx)
	if err != nil {
		t.Fatalf("requireMemberID error: %v", err)
	}
	if memberID != "member-1" {
		t.Fatalf("unexpected member id: %q", memberID)
	}
}

func TestRequireMemberID_MissingHeader(t *testing.T) {
	ctx := &app.RequestContext{}

	_, err := requireMemberID(ctx)
	if err != ErrMissingMemberIDHeader {
		t.Fatalf("expected ErrMissingMemberIDHeader, got %v", err)
	}
}

func TestWriteError_QuestLocked(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, award.ErrQuestLocked)

	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"]["code"], "quest_locked"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_UnknownQuest(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, award.ErrUnknownQuest)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"]["code"], "unknown_quest"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_InvalidOrderTotal(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, progression.ErrInvalidOrderTotal)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"]["code"], "bad_request"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_Conflict(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, ports.ErrConflict)

	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestWriteError_Unknown(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, errors.New("boom"))

	if got, want := ctx.Response.StatusCode(), consts.StatusInternalServerError; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"]["message"], "internal error"; got != want {
		t.Fatalf("message should not leak internals: got=%q want=%q", got, want)
	}
}

func TestProgress_OK(t *testing.T) {
	ladder := mustLadder(t)
	now := time.Unix(1700000000, 0).UTC()
	h := Handler{
		ProgressUC: progress.UseCase{
			Accounts: fakeAccountRepo{snapshot: progression.AccountSnapshot{
				MemberID:  "member-1",
				Points:    1750,
				Tokens:    12,
				CreatedAt: now.Add(-24 * time.Hour),
				Version:   1,
			}},
			Ladder: ladder,
			Now:    func() time.Time { return now },
		},
	}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(memberIDHeader, "member-1")

	h.progress(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["member_id"], "member-1"; got != want {
		t.Fatalf("member_id mismatch: got=%v want=%v", got, want)
	}
	tier, _ := body["tier"].(map[string]any)
	if got, want := tier["name"], "Silver"; got != want {
		t.Fatalf("tier mismatch: got=%v want=%v", got, want)
	}
	act, _ := body["act"].(map[string]any)
	if got, want := act["progress_percent"], 50.0; got != want {
		t.Fatalf("progress_percent mismatch: got=%v want=%v", got, want)
	}
}

func TestProgress_UnknownMember(t *testing.T) {
	h := Handler{
		ProgressUC: progress.UseCase{
			Accounts: fakeAccountRepo{err: ports.ErrNotFound},
			Ladder:   mustLadder(t),
		},
	}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(memberIDHeader, "ghost")

	h.progress(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestProgress_MissingHeader(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}

	h.progress(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"]["code"], "missing_member_id"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestSettleOrder_OK(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	accounts := &fakeMutableAccountRepo{snapshot: progression.AccountSnapshot{
		MemberID: "member-1",
		Points:   100,
		Tokens:   10,
		Version:  1,
	}}
	h := Handler{
		OrderUC: award.OrderUseCase{
			TxManager: fakeTxManager{},
			Accounts:  accounts,
			Ledger:    &fakeLedgerRepo{},
			Now:       func() time.Time { return now },
		},
	}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(memberIDHeader, "member-1")
	ctx.Request.SetBody([]byte(`{"idempotency_key":"order-7","order_id":"order-7","order_total":47.60}`))

	h.settleOrder(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}
	var body map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["points_delta"], 47.0; got != want {
		t.Fatalf("points_delta mismatch: got=%v want=%v", got, want)
	}
	if got, want := body["points"], 147.0; got != want {
		t.Fatalf("points mismatch: got=%v want=%v", got, want)
	}
}

func TestSettleOrder_InvalidJSON(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(memberIDHeader, "member-1")
	ctx.Request.SetBody([]byte(`{not json`))

	h.settleOrder(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestSettleOrder_NegativeTotal(t *testing.T) {
	h := Handler{
		OrderUC: award.OrderUseCase{
			TxManager: fakeTxManager{},
			Accounts:  &fakeMutableAccountRepo{},
			Ledger:    &fakeLedgerRepo{},
		},
	}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(memberIDHeader, "member-1")
	ctx.Request.SetBody([]byte(`{"idempotency_key":"k1","order_total":-3}`))

	h.settleOrder(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestClaimQuest_Incomplete(t *testing.T) {
	accounts := &fakeMutableAccountRepo{snapshot: progression.AccountSnapshot{
		MemberID: "member-1",
		Points:   500,
		Version:  1,
		Quests: []progression.Quest{{
			ID:           "q1",
			RewardType:   progression.RewardTokens,
			RewardAmount: 50,
			Progress:     40,
		}},
	}}
	h := Handler{
		QuestUC: award.QuestUseCase{
			TxManager: fakeTxManager{},
			Accounts:  accounts,
			Ledger:    &fakeLedgerRepo{},
			Ladder:    mustLadder(t),
		},
	}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(memberIDHeader, "member-1")
	ctx.Request.SetBody([]byte(`{"idempotency_key":"k1","quest_id":"q1"}`))

	h.claimQuest(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["error"]["code"], "quest_incomplete"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestHistory_OK(t *testing.T) {
	applied := time.Unix(1700000000, 0).UTC()
	h := Handler{
		HistoryUC: history.UseCase{Ledger: &fakeLedgerRepo{entries: []ports.LedgerEntry{{
			MemberID:    "member-1",
			Source:      ports.LedgerSourceOrder,
			PointsDelta: 47,
			AppliedAt:   applied,
		}}}},
	}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(memberIDHeader, "member-1")

	h.history(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string][]map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body["entries"]) != 1 {
		t.Fatalf("entries=%d, want 1", len(body["entries"]))
	}
}

func TestKPI_NotConfigured(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}

	h.kpi(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
}

func TestKPI_OK(t *testing.T) {
	h := Handler{KPI: fakeKPIProvider{snapshot: map[string]int{"award_total": 3}}}
	ctx := &app.RequestContext{}

	h.kpi(context.Background(), ctx)

	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	var body map[string]int
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got, want := body["award_total"], 3; got != want {
		t.Fatalf("award_total mismatch: got=%d want=%d", got, want)
	}
}

func mustLadder(t *testing.T) progression.Ladder {
	t.Helper()
	ladder, err := progression.NewLadder(progression.DefaultLadderConfig())
	if err != nil {
		t.Fatalf("build ladder: %v", err)
	}
	return ladder
}

type fakeAccountRepo struct {
	snapshot progression.AccountSnapshot
	err      error
}

func (r fakeAccountRepo) GetByMemberID(_ context.Context, _ string) (progression.AccountSnapshot, error) {
	if r.err != nil {
		return progression.AccountSnapshot{}, r.err
	}
	return r.snapshot, nil
}

func (r fakeAccountRepo) SaveBalancesWithVersion(_ context.Context, _ progression.AccountSnapshot, _ int64) error {
	return nil
}

type fakeMutableAccountRepo struct {
	snapshot progression.AccountSnapshot
}

func (r *fakeMutableAccountRepo) GetByMemberID(_ context.Context, memberID string) (progression.AccountSnapshot, error) {
	if r.snapshot.MemberID != memberID {
		return progression.AccountSnapshot{}, ports.ErrNotFound
	}
	return r.snapshot, nil
}

func (r *fakeMutableAccountRepo) SaveBalancesWithVersion(_ context.Context, snapshot progression.AccountSnapshot, expectedVersion int64) error {
	if r.snapshot.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.snapshot = snapshot
	return nil
}

type fakeLedgerRepo struct {
	entries []ports.LedgerEntry
}

func (r *fakeLedgerRepo) GetByIdempotencyKey(_ context.Context, memberID, key string) (*ports.LedgerEntry, error) {
	for i := range r.entries {
		if r.entries[i].MemberID == memberID && r.entries[i].IdempotencyKey == key {
			return &r.entries[i], nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *fakeLedgerRepo) Append(_ context.Context, entry ports.LedgerEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeLedgerRepo) ListByMemberID(_ context.Context, memberID string, limit int) ([]ports.LedgerEntry, error) {
	out := make([]ports.LedgerEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].MemberID == memberID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type fakeKPIProvider struct {
	snapshot any
}

func (p fakeKPIProvider) SnapshotAny() any {
	return p.snapshot
}
