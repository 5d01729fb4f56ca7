package services

import (
	"time"

	"fitnesshub_backend/internal/models"
	"fitnesshub_backend/internal/repositories"
)

// Hand-rolled fakes backing the service tests. Only the members each test
// exercises carry real behavior; the rest return zero values.

type fakeMemberRepo struct {
	profiles map[int64]*models.MemberProfile // keyed by profile ID
	byUser   map[int64]*models.MemberProfile

	frozenCalls   []frozenCall
	unfrozenCalls []unfrozenCall
	statusCalls   []string
}

type frozenCall struct {
	profileID int64
	days      int
}

type unfrozenCall struct {
	profileID   int64
	nextDueDate time.Time
}

func newFakeMemberRepo(profiles ...*models.MemberProfile) *fakeMemberRepo {
	r := &fakeMemberRepo{
		profiles: map[int64]*models.MemberProfile{},
		byUser:   map[int64]*models.MemberProfile{},
	}
	for _, p := range profiles {
		r.profiles[p.ID] = p
		r.byUser[p.UserID] = p
	}
	return r
}

func (r *fakeMemberRepo) CreateProfile(_ repositories.SQLExecutor, profile *models.MemberProfile) (int64, error) {
	profile.ID = int64(len(r.profiles) + 1)
	r.profiles[profile.ID] = profile
	r.byUser[profile.UserID] = profile
	return profile.ID, nil
}

func (r *fakeMemberRepo) GetProfileByID(id int64) (*models.MemberProfile, error) {
	if p, ok := r.profiles[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeMemberRepo) GetProfileByUserID(userID int64) (*models.MemberProfile, error) {
	if p, ok := r.byUser[userID]; ok {
		return p, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeMemberRepo) SetActivationStatus(_ repositories.SQLExecutor, profileID int64, status string) error {
	r.statusCalls = append(r.statusCalls, status)
	if p, ok := r.profiles[profileID]; ok {
		p.ActivationStatus = status
		return nil
	}
	return repositories.ErrNotFound
}

func (r *fakeMemberRepo) ActivateProfile(_ repositories.SQLExecutor, profileID int64, balance float64, nextDueDate time.Time, membershipID string) error {
	p, ok := r.profiles[profileID]
	if !ok || p.ActivationStatus == models.ActivationApproved {
		return repositories.ErrNotFound
	}
	p.Balance = balance
	p.NextDueDate = &nextDueDate
	if p.MembershipID == nil {
		p.MembershipID = &membershipID
	}
	p.ActivationStatus = models.ActivationApproved
	return nil
}

func (r *fakeMemberRepo) ApplyPayment(_ repositories.SQLExecutor, profileID int64, amount float64) error {
	p, ok := r.profiles[profileID]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Balance -= amount
	return nil
}

func (r *fakeMemberRepo) SetFrozen(_ repositories.SQLExecutor, profileID int64, daysRemaining int) error {
	p, ok := r.profiles[profileID]
	if !ok || p.IsFrozen {
		return repositories.ErrNotFound
	}
	r.frozenCalls = append(r.frozenCalls, frozenCall{profileID, daysRemaining})
	p.IsFrozen = true
	p.DaysRemainingOnFreeze = &daysRemaining
	p.NextDueDate = nil
	return nil
}

func (r *fakeMemberRepo) SetUnfrozen(_ repositories.SQLExecutor, profileID int64, nextDueDate time.Time) error {
	p, ok := r.profiles[profileID]
	if !ok || !p.IsFrozen {
		return repositories.ErrNotFound
	}
	r.unfrozenCalls = append(r.unfrozenCalls, unfrozenCall{profileID, nextDueDate})
	p.IsFrozen = false
	p.DaysRemainingOnFreeze = nil
	p.NextDueDate = &nextDueDate
	return nil
}

func (r *fakeMemberRepo) NextMembershipSeq(_ repositories.SQLExecutor, prefix string, year int) (int, error) {
	return 1, nil
}

func (r *fakeMemberRepo) CountActiveMembers() (int, error) { return len(r.profiles), nil }

func (r *fakeMemberRepo) GetActiveMembers(_ *string) ([]models.MemberListEntry, error) {
	return []models.MemberListEntry{}, nil
}

func (r *fakeMemberRepo) GetPendingMembers() ([]models.MemberProfile, error) {
	pending := []models.MemberProfile{}
	for _, p := range r.profiles {
		if p.ActivationStatus == models.ActivationPending {
			pending = append(pending, *p)
		}
	}
	return pending, nil
}

func (r *fakeMemberRepo) GetFrozenMembers() ([]models.MemberListEntry, error) {
	return []models.MemberListEntry{}, nil
}

type fakeAuthRepo struct {
	users  map[int64]*models.User
	hashes map[int64]string

	updatedUsers []*models.User
}

func newFakeAuthRepo(users ...*models.User) *fakeAuthRepo {
	r := &fakeAuthRepo{users: map[int64]*models.User{}, hashes: map[int64]string{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeAuthRepo) CreateUser(_ repositories.SQLExecutor, user *models.User, hash string) (int64, error) {
	user.ID = int64(len(r.users) + 1)
	r.users[user.ID] = user
	r.hashes[user.ID] = hash
	return user.ID, nil
}

func (r *fakeAuthRepo) FindUserByID(id int64) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAuthRepo) FindUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAuthRepo) GetPasswordHash(userID int64) (string, error) {
	if h, ok := r.hashes[userID]; ok {
		return h, nil
	}
	return "", repositories.ErrNotFound
}

func (r *fakeAuthRepo) OverwriteRegistration(_ repositories.SQLExecutor, user *models.User, _ string) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeAuthRepo) UpdatePassword(_ repositories.SQLExecutor, userID int64, hash string) error {
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrNotFound
	}
	r.hashes[userID] = hash
	return nil
}

func (r *fakeAuthRepo) SetUserActive(_ repositories.SQLExecutor, userID int64, active bool) error {
	if u, ok := r.users[userID]; ok {
		u.IsActive = active
		return nil
	}
	return repositories.ErrNotFound
}

func (r *fakeAuthRepo) UpdateUserDetails(_ repositories.SQLExecutor, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.updatedUsers = append(r.updatedUsers, user)
	r.users[user.ID] = user
	return nil
}

type fakeBillingRepo struct {
	records  []models.BillingRecord
	payments []models.BillingRecord
}

func (r *fakeBillingRepo) CreateRecord(_ repositories.SQLExecutor, record *models.BillingRecord) (int64, error) {
	record.ID = int64(len(r.records) + 1)
	r.records = append(r.records, *record)
	return record.ID, nil
}

func (r *fakeBillingRepo) GetRecordsByMember(_ int64) ([]models.BillingRecord, error) {
	return r.records, nil
}

func (r *fakeBillingRepo) SumPaymentsBetween(_, _ time.Time) (float64, error) { return 0, nil }
func (r *fakeBillingRepo) SumFeesBetween(_, _ time.Time) (float64, error)    { return 0, nil }

func (r *fakeBillingRepo) GetPaymentsBetween(_, _ time.Time) ([]models.BillingRecord, error) {
	return r.payments, nil
}

func (r *fakeBillingRepo) GetRecentPayments(_ int) ([]models.BillingRecord, error) {
	return r.payments, nil
}

type fakeRequestRepo struct {
	pendingByMember map[int64]*models.AccountRequest
	pendingByID     map[int64]*models.AccountRequest
	created         []*models.AccountRequest
	decided         []string
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		pendingByMember: map[int64]*models.AccountRequest{},
		pendingByID:     map[int64]*models.AccountRequest{},
	}
}

func (r *fakeRequestRepo) Create(_ repositories.SQLExecutor, request *models.AccountRequest) (int64, error) {
	if _, exists := r.pendingByMember[request.MemberID]; exists {
		return 0, repositories.ErrDuplicateKey
	}
	request.ID = int64(len(r.created) + 1)
	request.Status = models.RequestStatusPending
	r.created = append(r.created, request)
	r.pendingByMember[request.MemberID] = request
	r.pendingByID[request.ID] = request
	return request.ID, nil
}

func (r *fakeRequestRepo) CreateDecided(_ repositories.SQLExecutor, request *models.AccountRequest) (int64, error) {
	request.ID = int64(len(r.created) + 1)
	r.created = append(r.created, request)
	return request.ID, nil
}

func (r *fakeRequestRepo) GetPendingByMember(memberID int64) (*models.AccountRequest, error) {
	if req, ok := r.pendingByMember[memberID]; ok {
		return req, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeRequestRepo) GetPendingByID(_ repositories.SQLExecutor, id int64) (*models.AccountRequest, error) {
	if req, ok := r.pendingByID[id]; ok {
		return req, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeRequestRepo) Decide(_ repositories.SQLExecutor, id int64, status string, _ int64, _ *string) error {
	if _, ok := r.pendingByID[id]; !ok {
		return repositories.ErrNotFound
	}
	r.decided = append(r.decided, status)
	return nil
}

func (r *fakeRequestRepo) CountPending() (int, error) { return len(r.pendingByMember), nil }

func (r *fakeRequestRepo) GetPendingAll() ([]models.AccountRequest, error) {
	return []models.AccountRequest{}, nil
}

type fakeCheckinRepo struct {
	history       []models.CheckIn
	activityLogs  []models.ActivityLog
	distinctDays  int
	totalCheckIns int
}

func (r *fakeCheckinRepo) CreateOpen(_ repositories.SQLExecutor, memberID int64) (*models.CheckIn, error) {
	return &models.CheckIn{ID: 1, MemberID: memberID, CheckInTime: time.Now()}, nil
}

func (r *fakeCheckinRepo) GetOpenByMember(_ repositories.SQLExecutor, _ int64) (*models.CheckIn, error) {
	return nil, repositories.ErrNotFound
}

func (r *fakeCheckinRepo) CloseCheckIn(_ repositories.SQLExecutor, _ int64) (*models.CheckIn, error) {
	return nil, repositories.ErrNotFound
}

func (r *fakeCheckinRepo) GetHistoryByMember(_ int64, _ int) ([]models.CheckIn, error) {
	return r.history, nil
}

func (r *fakeCheckinRepo) CountDistinctDaysInMonth(_ int64, _ int, _ time.Month) (int, error) {
	return r.distinctDays, nil
}

func (r *fakeCheckinRepo) CountByMember(_ int64) (int, error) { return r.totalCheckIns, nil }

func (r *fakeCheckinRepo) CreateActivityLog(_ repositories.SQLExecutor, log *models.ActivityLog) (int64, error) {
	log.ID = int64(len(r.activityLogs) + 1)
	r.activityLogs = append(r.activityLogs, *log)
	return log.ID, nil
}

func (r *fakeCheckinRepo) GetActivityLogsSince(_ int64, _ time.Time) ([]models.ActivityLog, error) {
	return r.activityLogs, nil
}

type fakeTrackerRepo struct {
	tracker       models.OccupancyTracker
	settingsSaved bool
}

func newFakeTrackerRepo() *fakeTrackerRepo {
	return &fakeTrackerRepo{tracker: models.OccupancyTracker{
		ID:                models.TrackerSingletonID,
		CapacityLimit:     120,
		PeakHoursStart:    "08:00",
		PeakHoursEnd:      "20:00",
		GymName:           "Cebu Fitness Hub",
		DefaultMonthlyFee: 2000.00,
		MemberIDPrefix:    "CFH",
	}}
}

func (r *fakeTrackerRepo) GetOrCreate(_ repositories.SQLExecutor) (*models.OccupancyTracker, error) {
	t := r.tracker
	return &t, nil
}

func (r *fakeTrackerRepo) UpdateSettings(_ repositories.SQLExecutor, tracker *models.OccupancyTracker) error {
	r.tracker = *tracker
	r.settingsSaved = true
	return nil
}

func (r *fakeTrackerRepo) IncrementCount(_ repositories.SQLExecutor) (int, error) {
	r.tracker.CurrentCount++
	return r.tracker.CurrentCount, nil
}

func (r *fakeTrackerRepo) DecrementCount(_ repositories.SQLExecutor) (int, error) {
	if r.tracker.CurrentCount > 0 {
		r.tracker.CurrentCount--
	}
	return r.tracker.CurrentCount, nil
}

type fakeNotificationRepo struct {
	created []models.Notification
	targets map[int64]*string
}

func (r *fakeNotificationRepo) Create(_ repositories.SQLExecutor, n *models.Notification) (int64, error) {
	n.ID = int64(len(r.created) + 1)
	r.created = append(r.created, *n)
	return n.ID, nil
}

func (r *fakeNotificationRepo) GetRecentByRecipient(recipientID int64, limit int) ([]models.Notification, error) {
	out := []models.Notification{}
	for _, n := range r.created {
		if n.RecipientID == recipientID && len(out) < limit {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) CountUnreadByRecipient(recipientID int64) (int, error) {
	count := 0
	for _, n := range r.created {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ repositories.SQLExecutor, id int64, _ int64) (*string, error) {
	if target, ok := r.targets[id]; ok {
		return target, nil
	}
	return nil, repositories.ErrNotFound
}

type fakeStaffRepo struct {
	staffIDs []int64
	created  []models.StaffProfile
}

func (r *fakeStaffRepo) CreateStaffProfile(_ repositories.SQLExecutor, profile *models.StaffProfile) (int64, error) {
	profile.ID = int64(len(r.staffIDs) + 1)
	r.staffIDs = append(r.staffIDs, profile.ID)
	r.created = append(r.created, *profile)
	return profile.ID, nil
}

func (r *fakeStaffRepo) GetStaffProfileByUserID(_ int64) (*models.StaffProfile, error) {
	return nil, repositories.ErrNotFound
}

func (r *fakeStaffRepo) GetAllStaffProfileIDs() ([]int64, error) { return r.staffIDs, nil }

type fakeScheduleRepo struct {
	classes []models.ClassSchedule
	overlap bool
}

func (r *fakeScheduleRepo) Create(_ repositories.SQLExecutor, class *models.ClassSchedule) (int64, error) {
	class.ID = int64(len(r.classes) + 1)
	r.classes = append(r.classes, *class)
	return class.ID, nil
}

func (r *fakeScheduleRepo) GetAll() ([]models.ClassSchedule, error) { return r.classes, nil }

func (r *fakeScheduleRepo) HasOverlap(_ int, _, _ string) (bool, error) { return r.overlap, nil }

func (r *fakeScheduleRepo) Delete(_ repositories.SQLExecutor, id int64) error {
	for i, c := range r.classes {
		if c.ID == id {
			r.classes = append(r.classes[:i], r.classes[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}
