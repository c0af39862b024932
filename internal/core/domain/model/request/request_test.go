package request_test

import (
	"testing"
	"time"

	"aidmatch/internal/core/domain/model/kernel"
	"aidmatch/internal/core/domain/model/request"
	"aidmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func actor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func snapshot(a kernel.Actor, name string) kernel.ProfileSnapshot {
	return kernel.ProfileSnapshot{ID: a.ID(), Name: name, Contact: name + "@example.org"}
}

func details(t *testing.T) request.Details {
	t.Helper()
	city, err := kernel.NewCity("Guntur")
	require.NoError(t, err)
	return request.Details{
		Initiative:         kernel.InitiativeFood,
		City:               city,
		Address:            "4 Station Road",
		BeneficiaryName:    "Lakshmi",
		BeneficiaryContact: "+91 90000 00000",
		Description:        "rice and lentils for 12 families",
		Urgency:            request.UrgencyHigh,
	}
}

func newPending(t *testing.T) *request.Request {
	t.Helper()
	r, err := request.NewRequest(kernel.NewUUID(), actor(t, kernel.RoleCommunity), details(t), now)
	require.NoError(t, err)
	return r
}

func TestNewRequest(t *testing.T) {
	t.Run("should create pending request", func(t *testing.T) {
		requester := actor(t, kernel.RoleCommunity)
		id := kernel.NewUUID()

		r, err := request.NewRequest(id, requester, details(t), now)

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.True(t, r.ID().IsEqual(id))
		assert.True(t, r.RequesterID().IsEqual(requester.ID()))
		assert.Equal(t, request.Pending, r.Status())
		assert.Equal(t, "guntur", r.Details().City.Normalized())
		assert.Nil(t, r.VolunteerID())
		assert.Nil(t, r.DonorID())
		assert.Equal(t, now, r.CreatedAt())
	})

	t.Run("should default urgency to medium", func(t *testing.T) {
		d := details(t)
		d.Urgency = ""

		r, err := request.NewRequest(kernel.NewUUID(), actor(t, kernel.RoleCommunity), d, now)

		require.NoError(t, err)
		assert.Equal(t, request.UrgencyMedium, r.Details().Urgency)
	})

	t.Run("should reject non-community requester", func(t *testing.T) {
		r, err := request.NewRequest(kernel.NewUUID(), actor(t, kernel.RoleDonor), details(t), now)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.Nil(t, r)
	})

	t.Run("should join validation errors", func(t *testing.T) {
		d := details(t)
		d.Address = "  "
		d.BeneficiaryName = ""
		d.Initiative = "toys"

		r, err := request.NewRequest(kernel.NewUUID(), actor(t, kernel.RoleCommunity), d, now)

		require.Error(t, err)
		assert.Nil(t, r)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "address")
		assert.Contains(t, err.Error(), "beneficiaryName")
		assert.Contains(t, err.Error(), "initiative")
	})
}

func TestRequest_HappyPath(t *testing.T) {
	r := newPending(t)
	v1 := actor(t, kernel.RoleVolunteer)
	d1 := actor(t, kernel.RoleDonor)

	require.NoError(t, r.Accept(v1, snapshot(v1, "Asha"), now.Add(time.Minute)))
	assert.Equal(t, request.VolunteerAccepted, r.Status())
	require.NotNil(t, r.VolunteerID())
	assert.True(t, r.VolunteerID().IsEqual(v1.ID()))
	assert.Equal(t, "Asha", r.Volunteer().Name)

	require.NoError(t, r.MarkReached(v1, now.Add(2*time.Minute)))
	assert.Equal(t, request.ReachedCommunity, r.Status())

	require.NoError(t, r.Approve(v1, "verified on site", now.Add(3*time.Minute)))
	assert.Equal(t, request.ApprovedByVolunteer, r.Status())
	assert.Equal(t, "verified on site", r.DecisionNotes())

	require.NoError(t, r.Claim(d1, "12 MG Road", "d1@example.org", now.Add(4*time.Minute)))
	assert.Equal(t, request.DonorClaimed, r.Status())
	require.NotNil(t, r.DonorID())
	assert.True(t, r.DonorID().IsEqual(d1.ID()))
	assert.Equal(t, "12 MG Road", r.DonorAddress())
	assert.Equal(t, now.Add(4*time.Minute), r.UpdatedAt())

	s := r.Snapshot()
	require.NotNil(t, s.AcceptedAt)
	require.NotNil(t, s.ReachedAt)
	require.NotNil(t, s.DecisionAt)
	require.NotNil(t, s.ClaimedAt)
}

func TestRequest_Accept(t *testing.T) {
	t.Run("should conflict when another volunteer holds the request", func(t *testing.T) {
		r := newPending(t)
		v1 := actor(t, kernel.RoleVolunteer)
		v2 := actor(t, kernel.RoleVolunteer)
		require.NoError(t, r.Accept(v1, snapshot(v1, "Asha"), now))

		err := r.Accept(v2, snapshot(v2, "Bala"), now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.True(t, r.VolunteerID().IsEqual(v1.ID()))
	})

	t.Run("should reject repeat accept by the holder as invalid transition", func(t *testing.T) {
		r := newPending(t)
		v1 := actor(t, kernel.RoleVolunteer)
		require.NoError(t, r.Accept(v1, snapshot(v1, "Asha"), now))

		err := r.Accept(v1, snapshot(v1, "Asha"), now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should reject non-volunteer", func(t *testing.T) {
		r := newPending(t)
		d := actor(t, kernel.RoleDonor)

		err := r.Accept(d, snapshot(d, "Dev"), now)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.Equal(t, request.Pending, r.Status())
	})

	t.Run("should fail after deny", func(t *testing.T) {
		r := newPending(t)
		v1 := actor(t, kernel.RoleVolunteer)
		v2 := actor(t, kernel.RoleVolunteer)
		require.NoError(t, r.Deny(v1, "duplicate", now))

		err := r.Accept(v2, snapshot(v2, "Bala"), now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, r.VolunteerID())
	})
}

func TestRequest_Deny(t *testing.T) {
	t.Run("any volunteer may deny a pending request", func(t *testing.T) {
		r := newPending(t)
		v := actor(t, kernel.RoleVolunteer)

		require.NoError(t, r.Deny(v, " out of area ", now))

		assert.Equal(t, request.RejectedByVolunteer, r.Status())
		assert.Equal(t, "out of area", r.DenialReason())
		assert.Nil(t, r.VolunteerID())
	})

	t.Run("only the assigned volunteer may deny after the visit", func(t *testing.T) {
		r := newPending(t)
		v1 := actor(t, kernel.RoleVolunteer)
		v2 := actor(t, kernel.RoleVolunteer)
		require.NoError(t, r.Accept(v1, snapshot(v1, "Asha"), now))
		require.NoError(t, r.MarkReached(v1, now))

		require.ErrorIs(t, r.Deny(v2, "", now), errs.ErrUnauthorized)
		require.NoError(t, r.Deny(v1, "not eligible", now))
		assert.Equal(t, request.RejectedByVolunteer, r.Status())
	})
}

func TestRequest_OwnershipAndLegality(t *testing.T) {
	t.Run("mark reached on pending is an invalid transition", func(t *testing.T) {
		r := newPending(t)

		err := r.MarkReached(actor(t, kernel.RoleVolunteer), now)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, request.Pending, r.Status())
	})

	t.Run("only the assigned volunteer marks reached", func(t *testing.T) {
		r := newPending(t)
		v1 := actor(t, kernel.RoleVolunteer)
		require.NoError(t, r.Accept(v1, snapshot(v1, "Asha"), now))

		err := r.MarkReached(actor(t, kernel.RoleVolunteer), now)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.Equal(t, request.VolunteerAccepted, r.Status())
	})

	t.Run("decision before the visit is an invalid transition", func(t *testing.T) {
		r := newPending(t)
		v1 := actor(t, kernel.RoleVolunteer)

		require.ErrorIs(t, r.Reject(v1, "", "", now), errs.ErrInvalidTransition)
		assert.Equal(t, request.Pending, r.Status())
	})

	t.Run("reject after visit keeps the volunteer", func(t *testing.T) {
		r := newPending(t)
		v1 := actor(t, kernel.RoleVolunteer)
		require.NoError(t, r.Accept(v1, snapshot(v1, "Asha"), now))
		require.NoError(t, r.MarkReached(v1, now))

		require.NoError(t, r.Reject(v1, "visited", "already helped", now))

		assert.Equal(t, request.RejectedByVolunteer, r.Status())
		assert.Equal(t, "already helped", r.DenialReason())
		assert.True(t, r.VolunteerID().IsEqual(v1.ID()))
	})
}

func TestRequest_Claim(t *testing.T) {
	approved := func(t *testing.T) *request.Request {
		t.Helper()
		r := newPending(t)
		v1 := actor(t, kernel.RoleVolunteer)
		require.NoError(t, r.Accept(v1, snapshot(v1, "Asha"), now))
		require.NoError(t, r.MarkReached(v1, now))
		require.NoError(t, r.Approve(v1, "", now))
		return r
	}

	t.Run("second donor conflicts", func(t *testing.T) {
		r := approved(t)
		d1 := actor(t, kernel.RoleDonor)
		require.NoError(t, r.Claim(d1, "12 MG Road", "", now))

		err := r.Claim(actor(t, kernel.RoleDonor), "1 Other St", "", now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.True(t, r.DonorID().IsEqual(d1.ID()))
	})

	t.Run("address is required", func(t *testing.T) {
		r := approved(t)

		err := r.Claim(actor(t, kernel.RoleDonor), " ", "", now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, request.ApprovedByVolunteer, r.Status())
		assert.Nil(t, r.DonorID())
	})

	t.Run("volunteer cannot claim", func(t *testing.T) {
		r := approved(t)

		require.ErrorIs(t, r.Claim(actor(t, kernel.RoleVolunteer), "x", "", now), errs.ErrUnauthorized)
	})
}

func TestRestoreRequest(t *testing.T) {
	t.Run("should round trip snapshot", func(t *testing.T) {
		r := newPending(t)
		v1 := actor(t, kernel.RoleVolunteer)
		require.NoError(t, r.Accept(v1, snapshot(v1, "Asha"), now))

		restored, err := request.RestoreRequest(r.Snapshot())

		require.NoError(t, err)
		assert.Equal(t, r.Snapshot(), restored.Snapshot())
	})

	t.Run("should reject accepted state without volunteer", func(t *testing.T) {
		s := newPending(t).Snapshot()
		s.Status = request.VolunteerAccepted

		_, err := request.RestoreRequest(s)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "must have a volunteer")
	})
}
