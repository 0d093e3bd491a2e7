package services

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"facturo/internal/models/db_models"
	"facturo/internal/repositories"
	"facturo/pkg/utils"
)

// memStore is an in-memory stand-in for the database shared by every fake
// repository, so ownership chains resolve like the SQL subqueries do.
type memStore struct {
	mu       sync.Mutex
	nextID   uint
	accounts map[uint]*db_models.Account
	tokens   map[uint]*db_models.PasswordResetToken
	clients  map[uint]*db_models.Client
	projects map[uint]*db_models.Project
	quotes   map[uint]*db_models.Quote
	invoices map[uint]*db_models.Invoice
	qlines   map[uint]*db_models.QuoteLine
	ilines   map[uint]*db_models.InvoiceLine

	failOverdueFor map[uint]error
}

func newMemStore() *memStore {
	return &memStore{
		accounts:       map[uint]*db_models.Account{},
		tokens:         map[uint]*db_models.PasswordResetToken{},
		clients:        map[uint]*db_models.Client{},
		projects:       map[uint]*db_models.Project{},
		quotes:         map[uint]*db_models.Quote{},
		invoices:       map[uint]*db_models.Invoice{},
		qlines:         map[uint]*db_models.QuoteLine{},
		ilines:         map[uint]*db_models.InvoiceLine{},
		failOverdueFor: map[uint]error{},
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func sortedIDs[T any](rows map[uint]*T) []uint {
	ids := make([]uint, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func pageOf[T any](items []T, params utils.ListParams) ([]T, int64) {
	total := int64(len(items))
	start := params.Offset()
	if start < 0 {
		start = 0
	}
	if start > len(items) {
		start = len(items)
	}
	end := start + params.PageSize
	if end > len(items) || params.PageSize == 0 {
		end = len(items)
	}
	return items[start:end], total
}

func filterMatches(params utils.ListParams, key string, value string) bool {
	v, ok := params.Filter(key)
	return !ok || v == value
}

func uintString(v uint) string { return strconv.FormatUint(uint64(v), 10) }

// ownership, with the lock held

func (m *memStore) clientOwner(id uint) uint {
	if c, ok := m.clients[id]; ok {
		return c.AccountID
	}
	return 0
}

func (m *memStore) projectOwner(id uint) uint {
	if p, ok := m.projects[id]; ok {
		return m.clientOwner(p.ClientID)
	}
	return 0
}

func (m *memStore) quoteOwner(id uint) uint {
	if q, ok := m.quotes[id]; ok {
		return m.projectOwner(q.ProjectID)
	}
	return 0
}

func (m *memStore) invoiceOwner(id uint) uint {
	if i, ok := m.invoices[id]; ok {
		return m.projectOwner(i.ProjectID)
	}
	return 0
}

func visible(scope utils.Scope, owner uint) bool {
	return owner != 0 && (scope.Admin || scope.AccountID == owner)
}

// ---------- accounts ----------

type fakeAccountRepo struct{ *memStore }

var _ repositories.AccountRepository = fakeAccountRepo{}

func (r fakeAccountRepo) InsertTx(_ context.Context, a *db_models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Email == a.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	a.ID = r.id()
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r fakeAccountRepo) FindById(_ context.Context, id uint) (*db_models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r fakeAccountRepo) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeAccountRepo) EmailTaken(_ context.Context, email string, exceptID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email && a.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeAccountRepo) List(_ context.Context, params utils.ListParams) ([]db_models.Account, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.Account
	for _, id := range sortedIDs(r.accounts) {
		out = append(out, *r.accounts[id])
	}
	items, total := pageOf(out, params)
	return items, total, nil
}

func (r fakeAccountRepo) ListAll(ctx context.Context) ([]db_models.Account, error) {
	items, _, err := r.List(ctx, utils.ListParams{Page: 1})
	return items, err
}

func (r fakeAccountRepo) Update(_ context.Context, a *db_models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r fakeAccountRepo) DeleteCascade(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for pid := range r.projects {
		if r.projectOwner(pid) == id {
			r.deleteProjectLocked(pid)
		}
	}
	for cid, c := range r.clients {
		if c.AccountID == id {
			delete(r.clients, cid)
		}
	}
	for tid, t := range r.tokens {
		if t.AccountID == id {
			delete(r.tokens, tid)
		}
	}
	delete(r.accounts, id)
	return nil
}

func (m *memStore) deleteProjectLocked(pid uint) {
	for iid, inv := range m.invoices {
		if inv.ProjectID == pid {
			for lid, l := range m.ilines {
				if l.InvoiceID == iid {
					delete(m.ilines, lid)
				}
			}
			delete(m.invoices, iid)
		}
	}
	for qid, q := range m.quotes {
		if q.ProjectID == pid {
			for lid, l := range m.qlines {
				if l.QuoteID == qid {
					delete(m.qlines, lid)
				}
			}
			delete(m.quotes, qid)
		}
	}
	delete(m.projects, pid)
}

// ---------- reset tokens ----------

type fakeResetRepo struct{ *memStore }

var _ repositories.PasswordResetRepository = fakeResetRepo{}

func (r fakeResetRepo) Replace(_ context.Context, accountID uint, token string, expiresAt time.Time) (*db_models.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, t := range r.tokens {
		if t.AccountID == accountID {
			delete(r.tokens, id)
		}
	}
	rec := &db_models.PasswordResetToken{AccountID: accountID, Token: token, ExpiresAt: expiresAt}
	rec.ID = r.id()
	r.tokens[rec.ID] = rec
	cp := *rec
	return &cp, nil
}

func (r fakeResetRepo) FindByToken(_ context.Context, token string) (*db_models.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.Token == token {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r fakeResetRepo) Consume(_ context.Context, token *db_models.PasswordResetToken, hash string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tokens[token.ID]
	if !ok || !stored.IsValid(now) {
		return gorm.ErrRecordNotFound
	}
	a, ok := r.accounts[token.AccountID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.PasswordHash = hash
	delete(r.tokens, token.ID)
	return nil
}

func (r fakeResetRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, t := range r.tokens {
		if !t.IsValid(now) {
			delete(r.tokens, id)
			n++
		}
	}
	return n, nil
}

func (r fakeResetRepo) tokensFor(accountID uint) []db_models.PasswordResetToken {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.PasswordResetToken
	for _, t := range r.tokens {
		if t.AccountID == accountID {
			out = append(out, *t)
		}
	}
	return out
}

// ---------- clients ----------

type fakeClientRepo struct{ *memStore }

var _ repositories.ClientRepository = fakeClientRepo{}

func (r fakeClientRepo) Create(_ context.Context, c *db_models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.id()
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r fakeClientRepo) FindByID(_ context.Context, scope utils.Scope, id uint) (*db_models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !visible(scope, r.clientOwner(id)) {
		return nil, nil
	}
	cp := *r.clients[id]
	return &cp, nil
}

func (r fakeClientRepo) List(_ context.Context, scope utils.Scope, params utils.ListParams) ([]db_models.Client, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.Client
	for _, id := range sortedIDs(r.clients) {
		if visible(scope, r.clientOwner(id)) {
			out = append(out, *r.clients[id])
		}
	}
	items, total := pageOf(out, params)
	return items, total, nil
}

func (r fakeClientRepo) Update(_ context.Context, c *db_models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r fakeClientRepo) DeleteCascade(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for pid, p := range r.projects {
		if p.ClientID == id {
			r.deleteProjectLocked(pid)
		}
	}
	delete(r.clients, id)
	return nil
}

// ---------- projects ----------

type fakeProjectRepo struct{ *memStore }

var _ repositories.ProjectRepository = fakeProjectRepo{}

func (r fakeProjectRepo) Create(_ context.Context, p *db_models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.id()
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r fakeProjectRepo) FindByID(_ context.Context, scope utils.Scope, id uint) (*db_models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !visible(scope, r.projectOwner(id)) {
		return nil, nil
	}
	cp := *r.projects[id]
	return &cp, nil
}

func (r fakeProjectRepo) List(_ context.Context, scope utils.Scope, params utils.ListParams) ([]db_models.Project, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.Project
	for _, id := range sortedIDs(r.projects) {
		p := r.projects[id]
		if visible(scope, r.projectOwner(id)) &&
			filterMatches(params, "status", string(p.Status)) &&
			filterMatches(params, "client_id", uintString(p.ClientID)) {
			out = append(out, *p)
		}
	}
	items, total := pageOf(out, params)
	return items, total, nil
}

func (r fakeProjectRepo) Update(_ context.Context, p *db_models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r fakeProjectRepo) UpdateStatus(_ context.Context, id uint, status db_models.ProjectStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	return nil
}

func (r fakeProjectRepo) DeleteCascade(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.deleteProjectLocked(id)
	return nil
}

// ---------- quotes ----------

type fakeQuoteRepo struct{ *memStore }

var _ repositories.QuoteRepository = fakeQuoteRepo{}

func (r fakeQuoteRepo) withLines(q db_models.Quote) db_models.Quote {
	q.Lines = nil
	for _, id := range sortedIDs(r.qlines) {
		if r.qlines[id].QuoteID == q.ID {
			q.Lines = append(q.Lines, *r.qlines[id])
		}
	}
	return q
}

func (r fakeQuoteRepo) Create(_ context.Context, q *db_models.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.quotes {
		if existing.Reference == q.Reference {
			return gorm.ErrDuplicatedKey
		}
	}
	q.ID = r.id()
	for i := range q.Lines {
		q.Lines[i].ID = r.id()
		q.Lines[i].QuoteID = q.ID
		l := q.Lines[i]
		r.qlines[l.ID] = &l
	}
	cp := *q
	cp.Lines = nil
	r.quotes[q.ID] = &cp
	return nil
}

func (r fakeQuoteRepo) FindByID(_ context.Context, scope utils.Scope, id uint) (*db_models.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !visible(scope, r.quoteOwner(id)) {
		return nil, nil
	}
	q := r.withLines(*r.quotes[id])
	return &q, nil
}

func (r fakeQuoteRepo) List(_ context.Context, scope utils.Scope, params utils.ListParams) ([]db_models.Quote, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.Quote
	for _, id := range sortedIDs(r.quotes) {
		q := r.quotes[id]
		if visible(scope, r.quoteOwner(id)) &&
			filterMatches(params, "status", string(q.Status)) &&
			filterMatches(params, "project_id", uintString(q.ProjectID)) {
			out = append(out, r.withLines(*q))
		}
	}
	items, total := pageOf(out, params)
	return items, total, nil
}

func (r fakeQuoteRepo) Update(_ context.Context, q *db_models.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *q
	cp.Lines = nil
	r.quotes[q.ID] = &cp
	return nil
}

func (r fakeQuoteRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quotes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for lid, l := range r.qlines {
		if l.QuoteID == id {
			delete(r.qlines, lid)
		}
	}
	for _, inv := range r.invoices {
		if inv.QuoteID != nil && *inv.QuoteID == id {
			inv.QuoteID = nil
		}
	}
	delete(r.quotes, id)
	return nil
}

func (r fakeQuoteRepo) ReferenceTaken(_ context.Context, reference string, exceptID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.quotes {
		if q.Reference == reference && q.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeQuoteRepo) CreateLine(_ context.Context, l *db_models.QuoteLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = r.id()
	cp := *l
	r.qlines[l.ID] = &cp
	return nil
}

func (r fakeQuoteRepo) FindLine(_ context.Context, scope utils.Scope, id uint) (*db_models.QuoteLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.qlines[id]
	if !ok || !visible(scope, r.quoteOwner(l.QuoteID)) {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r fakeQuoteRepo) ListLines(_ context.Context, scope utils.Scope, params utils.ListParams) ([]db_models.QuoteLine, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.QuoteLine
	for _, id := range sortedIDs(r.qlines) {
		l := r.qlines[id]
		if visible(scope, r.quoteOwner(l.QuoteID)) && filterMatches(params, "quote_id", uintString(l.QuoteID)) {
			out = append(out, *l)
		}
	}
	items, total := pageOf(out, params)
	return items, total, nil
}

func (r fakeQuoteRepo) UpdateLine(_ context.Context, l *db_models.QuoteLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.qlines[l.ID] = &cp
	return nil
}

func (r fakeQuoteRepo) DeleteLine(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.qlines[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.qlines, id)
	return nil
}

// ---------- invoices ----------

type fakeInvoiceRepo struct{ *memStore }

var _ repositories.InvoiceRepository = fakeInvoiceRepo{}

func (r fakeInvoiceRepo) withLines(i db_models.Invoice) db_models.Invoice {
	i.Lines = nil
	for _, id := range sortedIDs(r.ilines) {
		if r.ilines[id].InvoiceID == i.ID {
			i.Lines = append(i.Lines, *r.ilines[id])
		}
	}
	return i
}

func (r fakeInvoiceRepo) Create(_ context.Context, inv *db_models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if inv.Number != "" {
		for _, existing := range r.invoices {
			if existing.Number == inv.Number {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	inv.ID = r.id()
	if inv.Number == "" {
		inv.Number = db_models.InvoiceNumber(time.Time(inv.IssueDate).Year(), inv.ID)
	}
	for i := range inv.Lines {
		inv.Lines[i].ID = r.id()
		inv.Lines[i].InvoiceID = inv.ID
		l := inv.Lines[i]
		r.ilines[l.ID] = &l
	}
	cp := *inv
	cp.Lines = nil
	r.invoices[inv.ID] = &cp
	return nil
}

func (r fakeInvoiceRepo) FindByID(_ context.Context, scope utils.Scope, id uint) (*db_models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !visible(scope, r.invoiceOwner(id)) {
		return nil, nil
	}
	inv := r.withLines(*r.invoices[id])
	return &inv, nil
}

func (r fakeInvoiceRepo) List(_ context.Context, scope utils.Scope, params utils.ListParams, today datatypes.Date) ([]db_models.Invoice, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.Invoice
	for _, id := range sortedIDs(r.invoices) {
		inv := r.invoices[id]
		if v, ok := params.Filter("overdue"); ok && v == "true" && !inv.IsOverdue(today) {
			continue
		}
		if visible(scope, r.invoiceOwner(id)) &&
			filterMatches(params, "status", string(inv.Status)) &&
			filterMatches(params, "project_id", uintString(inv.ProjectID)) {
			out = append(out, r.withLines(*inv))
		}
	}
	items, total := pageOf(out, params)
	return items, total, nil
}

func (r fakeInvoiceRepo) Update(_ context.Context, inv *db_models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	cp.Lines = nil
	r.invoices[inv.ID] = &cp
	return nil
}

func (r fakeInvoiceRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invoices[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for lid, l := range r.ilines {
		if l.InvoiceID == id {
			delete(r.ilines, lid)
		}
	}
	delete(r.invoices, id)
	return nil
}

func (r fakeInvoiceRepo) NumberTaken(_ context.Context, number string, exceptID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invoices {
		if inv.Number == number && inv.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeInvoiceRepo) FindOverdueByAccount(_ context.Context, accountID uint, today datatypes.Date) ([]db_models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failOverdueFor[accountID]; err != nil {
		return nil, err
	}
	var out []db_models.Invoice
	for _, id := range sortedIDs(r.invoices) {
		inv := r.invoices[id]
		if r.invoiceOwner(id) == accountID && inv.IsOverdue(today) {
			out = append(out, r.withLines(*inv))
		}
	}
	return out, nil
}

func (r fakeInvoiceRepo) CreateLine(_ context.Context, l *db_models.InvoiceLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = r.id()
	cp := *l
	r.ilines[l.ID] = &cp
	return nil
}

func (r fakeInvoiceRepo) FindLine(_ context.Context, scope utils.Scope, id uint) (*db_models.InvoiceLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.ilines[id]
	if !ok || !visible(scope, r.invoiceOwner(l.InvoiceID)) {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r fakeInvoiceRepo) ListLines(_ context.Context, scope utils.Scope, params utils.ListParams) ([]db_models.InvoiceLine, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.InvoiceLine
	for _, id := range sortedIDs(r.ilines) {
		l := r.ilines[id]
		if visible(scope, r.invoiceOwner(l.InvoiceID)) && filterMatches(params, "invoice_id", uintString(l.InvoiceID)) {
			out = append(out, *l)
		}
	}
	items, total := pageOf(out, params)
	return items, total, nil
}

func (r fakeInvoiceRepo) UpdateLine(_ context.Context, l *db_models.InvoiceLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.ilines[l.ID] = &cp
	return nil
}

func (r fakeInvoiceRepo) DeleteLine(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ilines[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.ilines, id)
	return nil
}

// ---------- mail ----------

type sentMail struct {
	kind     string
	to       string
	link     string
	reminder OverdueReminder
}

type fakeMailer struct {
	mu     sync.Mutex
	sent   []sentMail
	failTo map[string]bool
}

var errMailDown = errors.New("smtp: connection refused")

func (f *fakeMailer) SendMailToResetPassword(_ context.Context, to, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTo[to] {
		return errMailDown
	}
	f.sent = append(f.sent, sentMail{kind: "reset", to: to, link: link})
	return nil
}

func (f *fakeMailer) SendOverdueReminder(_ context.Context, r OverdueReminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTo[r.To] {
		return errMailDown
	}
	f.sent = append(f.sent, sentMail{kind: "overdue", to: r.To, link: r.Link, reminder: r})
	return nil
}

// ---------- seeding ----------

func date(s string) datatypes.Date {
	d, err := utils.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (m *memStore) seedAccount(email string, admin bool) *db_models.Account {
	a := &db_models.Account{FirstName: "Ada", LastName: "Martin", Email: email, IsAdmin: admin}
	_ = fakeAccountRepo{m}.InsertTx(context.Background(), a)
	return a
}

func (m *memStore) seedClient(accountID uint) *db_models.Client {
	c := &db_models.Client{AccountID: accountID, FirstName: "Jean", LastName: "Dupont"}
	_ = fakeClientRepo{m}.Create(context.Background(), c)
	return c
}

func (m *memStore) seedProject(clientID uint) *db_models.Project {
	p := &db_models.Project{ClientID: clientID, Name: "Site vitrine", Status: db_models.ProjectProspect}
	_ = fakeProjectRepo{m}.Create(context.Background(), p)
	return p
}

func (m *memStore) seedInvoice(projectID uint, status db_models.InvoiceStatus, due string, lines ...db_models.InvoiceLine) *db_models.Invoice {
	inv := &db_models.Invoice{
		ProjectID:      projectID,
		Status:         status,
		IssueDate:      utils.AddDays(date(due), -30),
		PaymentDueDate: date(due),
		PaymentType:    db_models.PaymentBankTransfer,
		Lines:          lines,
	}
	_ = fakeInvoiceRepo{m}.Create(context.Background(), inv)
	return inv
}
