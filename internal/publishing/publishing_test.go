package publishing

import (
	"errors"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socialhub/socialhub-go/internal/store"
	"github.com/socialhub/socialhub-go/pkg/hub"
	"github.com/socialhub/socialhub-go/pkg/modules"
)

var (
	governance    = common.HexToAddress("0x1000000000000000000000000000000000000001")
	alice         = common.HexToAddress("0xA11Ce00000000000000000000000000000000001")
	bob           = common.HexToAddress("0xB0B0000000000000000000000000000000000002")
	hubAddr       = common.HexToAddress("0x00000000000000000000000000000000000Ab1e5")
	collectAddr   = common.HexToAddress("0x0000000000000000000000000000000000000C01")
	followAddr    = common.HexToAddress("0x0000000000000000000000000000000000000F01")
	referenceAddr = common.HexToAddress("0x0000000000000000000000000000000000000E01")
)

// fakeCollectModule records its init data and optionally vetoes.
type fakeCollectModule struct {
	initData  []byte
	initErr   error
	vetoErr   error
	processed int
}

func (m *fakeCollectModule) InitializePublicationCollectModule(sender common.Address, profileID, pubID uint64, data []byte) ([]byte, error) {
	m.initData = data
	return []byte("collect-init"), m.initErr
}

func (m *fakeCollectModule) ProcessCollect(sender common.Address, referrerProfileID uint64, collector common.Address, profileID, pubID uint64, data []byte) error {
	m.processed++
	return m.vetoErr
}

// fakeFollowModule optionally fails its initializer.
type fakeFollowModule struct {
	initErr error
}

func (m *fakeFollowModule) InitializeFollowModule(sender common.Address, profileID uint64, data []byte) ([]byte, error) {
	return []byte("follow-init"), m.initErr
}

func (m *fakeFollowModule) ProcessFollow(sender, follower common.Address, profileID uint64, data []byte) error {
	return nil
}

func (m *fakeFollowModule) IsFollowing(profileID uint64, follower common.Address, followTokenID uint64) (bool, error) {
	return false, nil
}

// fakeReferenceModule optionally vetoes comments and mirrors.
type fakeReferenceModule struct {
	commentErr error
	mirrorErr  error
}

func (m *fakeReferenceModule) InitializeReferenceModule(sender common.Address, profileID, pubID uint64, data []byte) ([]byte, error) {
	return nil, nil
}

func (m *fakeReferenceModule) ProcessComment(sender common.Address, profileID, pointedProfileID, pointedPubID uint64, data []byte) error {
	return m.commentErr
}

func (m *fakeReferenceModule) ProcessMirror(sender common.Address, profileID, pointedProfileID, pointedPubID uint64, data []byte) error {
	return m.mirrorErr
}

type fixture struct {
	ledger    *store.Ledger
	env       Env
	collect   *fakeCollectModule
	follow    *fakeFollowModule
	reference *fakeReferenceModule
}

// newFixture wires a ledger with whitelisted, registered fake modules and a
// whitelisted creator.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		ledger:    store.NewLedger(governance),
		collect:   &fakeCollectModule{},
		follow:    &fakeFollowModule{},
		reference: &fakeReferenceModule{},
	}

	registry := modules.NewRegistry()
	registry.RegisterCollectModule(collectAddr, f.collect)
	registry.RegisterFollowModule(followAddr, f.follow)
	registry.RegisterReferenceModule(referenceAddr, f.reference)
	f.env = Env{Registry: registry, HubAddr: hubAddr}

	txn := f.ledger.Begin()
	txn.SetWhitelisted(hub.ProfileCreatorWhitelist, alice, true)
	txn.SetWhitelisted(hub.ProfileCreatorWhitelist, bob, true)
	txn.SetWhitelisted(hub.CollectModuleWhitelist, collectAddr, true)
	txn.SetWhitelisted(hub.FollowModuleWhitelist, followAddr, true)
	txn.SetWhitelisted(hub.ReferenceModuleWhitelist, referenceAddr, true)
	txn.Commit()
	return f
}

func (f *fixture) createProfile(t *testing.T, owner common.Address, handle string) uint64 {
	t.Helper()
	txn := f.ledger.Begin()
	id, err := CreateProfile(txn, f.env, owner, hub.CreateProfileInput{To: owner, Handle: handle})
	require.NoError(t, err)
	txn.Commit()
	return id
}

func (f *fixture) post(t *testing.T, profileID uint64, uri string) uint64 {
	t.Helper()
	txn := f.ledger.Begin()
	pubID, err := CreatePost(txn, f.env, hub.PostInput{
		ProfileID:     profileID,
		ContentURI:    uri,
		CollectModule: collectAddr,
	})
	require.NoError(t, err)
	txn.Commit()
	return pubID
}

func TestValidateHandle(t *testing.T) {
	tests := []struct {
		name    string
		handle  string
		wantErr error
	}{
		{"simple", "alice", nil},
		{"digits and separators", "a1-b2_c3.d4", nil},
		{"single char", "a", nil},
		{"max length", strings.Repeat("a", 31), nil},
		{"empty", "", hub.ErrHandleLengthInvalid},
		{"too long", strings.Repeat("a", 32), hub.ErrHandleLengthInvalid},
		{"uppercase", "Alice", hub.ErrHandleContainsInvalidCharacters},
		{"space", "al ice", hub.ErrHandleContainsInvalidCharacters},
		{"unicode", "ålice", hub.ErrHandleContainsInvalidCharacters},
		{"at sign", "@alice", hub.ErrHandleContainsInvalidCharacters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHandle(tt.handle)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateProfile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		txn := f.ledger.Begin()
		id, err := CreateProfile(txn, f.env, alice, hub.CreateProfileInput{
			To:       alice,
			Handle:   "alice",
			ImageURI: "ipfs://a",
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), id)

		events := txn.Commit()
		require.Len(t, events, 1)
		assert.Equal(t, hub.EventProfileCreated, events[0].Name)

		p, ok := f.ledger.Profile(id)
		require.True(t, ok)
		assert.Equal(t, "alice", p.Handle)
		assert.Equal(t, alice, f.ledger.Owner(id))
		assert.Equal(t, id, f.ledger.ProfileIDByHandle("alice"))
	})

	t.Run("creator not whitelisted", func(t *testing.T) {
		f := newFixture(t)
		stranger := common.HexToAddress("0x9999999999999999999999999999999999999999")
		_, err := CreateProfile(f.ledger.Begin(), f.env, stranger, hub.CreateProfileInput{To: stranger, Handle: "x"})
		assert.ErrorIs(t, err, hub.ErrProfileCreatorNotWhitelisted)
	})

	t.Run("mint to zero address rejected", func(t *testing.T) {
		f := newFixture(t)
		_, err := CreateProfile(f.ledger.Begin(), f.env, alice, hub.CreateProfileInput{
			To:     common.Address{},
			Handle: "ghost",
		})
		assert.ErrorIs(t, err, hub.ErrMintToZeroAddress)
		// Handle stays free after the rejection
		assert.Equal(t, uint64(0), f.ledger.ProfileIDByHandle("ghost"))
	})

	t.Run("handle taken", func(t *testing.T) {
		f := newFixture(t)
		f.createProfile(t, alice, "alice")
		_, err := CreateProfile(f.ledger.Begin(), f.env, bob, hub.CreateProfileInput{To: bob, Handle: "alice"})
		assert.ErrorIs(t, err, hub.ErrHandleTaken)
	})

	t.Run("image URI too long", func(t *testing.T) {
		f := newFixture(t)
		_, err := CreateProfile(f.ledger.Begin(), f.env, alice, hub.CreateProfileInput{
			To:       alice,
			Handle:   "alice",
			ImageURI: strings.Repeat("x", hub.MaxProfileImageURILength+1),
		})
		assert.ErrorIs(t, err, hub.ErrProfileImageURILengthInvalid)
	})

	t.Run("with follow module", func(t *testing.T) {
		f := newFixture(t)
		txn := f.ledger.Begin()
		id, err := CreateProfile(txn, f.env, alice, hub.CreateProfileInput{
			To:           alice,
			Handle:       "alice",
			FollowModule: followAddr,
		})
		require.NoError(t, err)
		events := txn.Commit()
		require.Len(t, events, 1)
		payload := events[0].Payload.(hub.ProfileCreatedEvent)
		assert.Equal(t, []byte("follow-init"), payload.FollowModuleReturnData)
		_ = id
	})

	t.Run("follow module not whitelisted", func(t *testing.T) {
		f := newFixture(t)
		_, err := CreateProfile(f.ledger.Begin(), f.env, alice, hub.CreateProfileInput{
			To:           alice,
			Handle:       "alice",
			FollowModule: common.HexToAddress("0xDEAD000000000000000000000000000000000001"),
		})
		assert.ErrorIs(t, err, hub.ErrFollowModuleNotWhitelisted)
	})

	t.Run("follow module init failure aborts", func(t *testing.T) {
		f := newFixture(t)
		f.follow.initErr = errors.New("bad init data")
		_, err := CreateProfile(f.ledger.Begin(), f.env, alice, hub.CreateProfileInput{
			To:           alice,
			Handle:       "alice",
			FollowModule: followAddr,
		})
		require.Error(t, err)
		// Handle stays free after the abort
		assert.Equal(t, uint64(0), f.ledger.ProfileIDByHandle("alice"))
	})
}

func TestCreatePost(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		id := f.createProfile(t, alice, "alice")

		txn := f.ledger.Begin()
		pubID, err := CreatePost(txn, f.env, hub.PostInput{
			ProfileID:       id,
			ContentURI:      "ipfs://post",
			CollectModule:   collectAddr,
			CollectInitData: []byte{0x01},
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), pubID)
		txn.Commit()

		pub, ok := f.ledger.Publication(id, pubID)
		require.True(t, ok)
		assert.Equal(t, hub.Post, pub.Type())
		assert.Equal(t, "ipfs://post", pub.ContentURI)
		assert.Equal(t, []byte{0x01}, f.collect.initData)

		p, _ := f.ledger.Profile(id)
		assert.Equal(t, uint64(1), p.PubCount)
	})

	t.Run("pub IDs increment per profile", func(t *testing.T) {
		f := newFixture(t)
		id := f.createProfile(t, alice, "alice")
		other := f.createProfile(t, bob, "bob")

		assert.Equal(t, uint64(1), f.post(t, id, "ipfs://1"))
		assert.Equal(t, uint64(2), f.post(t, id, "ipfs://2"))
		assert.Equal(t, uint64(1), f.post(t, other, "ipfs://3"))
	})

	t.Run("profile does not exist", func(t *testing.T) {
		f := newFixture(t)
		_, err := CreatePost(f.ledger.Begin(), f.env, hub.PostInput{ProfileID: 42, CollectModule: collectAddr})
		assert.ErrorIs(t, err, hub.ErrProfileDoesNotExist)
	})

	t.Run("zero collect module rejected", func(t *testing.T) {
		f := newFixture(t)
		id := f.createProfile(t, alice, "alice")
		_, err := CreatePost(f.ledger.Begin(), f.env, hub.PostInput{ProfileID: id, ContentURI: "ipfs://x"})
		assert.ErrorIs(t, err, hub.ErrCollectModuleNotWhitelisted)
	})

	t.Run("whitelisted but unregistered module", func(t *testing.T) {
		f := newFixture(t)
		id := f.createProfile(t, alice, "alice")
		orphan := common.HexToAddress("0x0000000000000000000000000000000000000C99")
		txn := f.ledger.Begin()
		txn.SetWhitelisted(hub.CollectModuleWhitelist, orphan, true)
		txn.Commit()

		_, err := CreatePost(f.ledger.Begin(), f.env, hub.PostInput{ProfileID: id, CollectModule: orphan})
		assert.ErrorIs(t, err, hub.ErrModuleNotRegistered)
	})
}

func TestCreateComment(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		aliceID := f.createProfile(t, alice, "alice")
		bobID := f.createProfile(t, bob, "bob")
		postID := f.post(t, aliceID, "ipfs://post")

		txn := f.ledger.Begin()
		pubID, err := CreateComment(txn, f.env, hub.CommentInput{
			ProfileID:        bobID,
			ContentURI:       "ipfs://comment",
			PointedProfileID: aliceID,
			PointedPubID:     postID,
			CollectModule:    collectAddr,
		})
		require.NoError(t, err)
		txn.Commit()

		pub, _ := f.ledger.Publication(bobID, pubID)
		assert.Equal(t, hub.Comment, pub.Type())
		assert.Equal(t, aliceID, pub.PointedProfileID)
		assert.Equal(t, postID, pub.PointedPubID)
	})

	t.Run("pointed publication missing", func(t *testing.T) {
		f := newFixture(t)
		bobID := f.createProfile(t, bob, "bob")
		_, err := CreateComment(f.ledger.Begin(), f.env, hub.CommentInput{
			ProfileID:        bobID,
			PointedProfileID: 42,
			PointedPubID:     1,
			CollectModule:    collectAddr,
		})
		assert.ErrorIs(t, err, hub.ErrPublicationDoesNotExist)
	})

	t.Run("cannot comment on self", func(t *testing.T) {
		f := newFixture(t)
		aliceID := f.createProfile(t, alice, "alice")
		f.post(t, aliceID, "ipfs://post")

		// The comment would be assigned pub ID 2; pointing it at (alice, 2)
		// is a self-reference.
		_, err := CreateComment(f.ledger.Begin(), f.env, hub.CommentInput{
			ProfileID:        aliceID,
			PointedProfileID: aliceID,
			PointedPubID:     2,
			CollectModule:    collectAddr,
		})
		assert.ErrorIs(t, err, hub.ErrCannotCommentOnSelf)
	})

	t.Run("reference module veto", func(t *testing.T) {
		f := newFixture(t)
		aliceID := f.createProfile(t, alice, "alice")
		bobID := f.createProfile(t, bob, "bob")

		txn := f.ledger.Begin()
		postID, err := CreatePost(txn, f.env, hub.PostInput{
			ProfileID:       aliceID,
			ContentURI:      "ipfs://gated",
			CollectModule:   collectAddr,
			ReferenceModule: referenceAddr,
		})
		require.NoError(t, err)
		txn.Commit()

		f.reference.commentErr = errors.New("followers only")
		_, err = CreateComment(f.ledger.Begin(), f.env, hub.CommentInput{
			ProfileID:        bobID,
			PointedProfileID: aliceID,
			PointedPubID:     postID,
			CollectModule:    collectAddr,
		})
		assert.Error(t, err)
	})
}

func TestCreateMirror(t *testing.T) {
	t.Run("mirror of a post", func(t *testing.T) {
		f := newFixture(t)
		aliceID := f.createProfile(t, alice, "alice")
		bobID := f.createProfile(t, bob, "bob")
		postID := f.post(t, aliceID, "ipfs://post")

		txn := f.ledger.Begin()
		mirrorID, err := CreateMirror(txn, f.env, hub.MirrorInput{
			ProfileID:        bobID,
			PointedProfileID: aliceID,
			PointedPubID:     postID,
		})
		require.NoError(t, err)
		txn.Commit()

		pub, _ := f.ledger.Publication(bobID, mirrorID)
		assert.Equal(t, hub.Mirror, pub.Type())
		assert.Empty(t, pub.ContentURI)
		assert.Equal(t, aliceID, pub.PointedProfileID)
	})

	t.Run("mirror of a mirror collapses to the root", func(t *testing.T) {
		f := newFixture(t)
		aliceID := f.createProfile(t, alice, "alice")
		bobID := f.createProfile(t, bob, "bob")
		postID := f.post(t, aliceID, "ipfs://post")

		txn := f.ledger.Begin()
		firstMirror, err := CreateMirror(txn, f.env, hub.MirrorInput{
			ProfileID:        bobID,
			PointedProfileID: aliceID,
			PointedPubID:     postID,
		})
		require.NoError(t, err)
		txn.Commit()

		txn = f.ledger.Begin()
		secondMirror, err := CreateMirror(txn, f.env, hub.MirrorInput{
			ProfileID:        bobID,
			PointedProfileID: bobID,
			PointedPubID:     firstMirror,
		})
		require.NoError(t, err)
		events := txn.Commit()

		pub, _ := f.ledger.Publication(bobID, secondMirror)
		assert.Equal(t, aliceID, pub.PointedProfileID)
		assert.Equal(t, postID, pub.PointedPubID)

		payload := events[0].Payload.(hub.MirrorCreatedEvent)
		assert.Equal(t, aliceID, payload.PointedProfileID)
		assert.Equal(t, postID, payload.PointedPubID)
	})

	t.Run("reference module veto", func(t *testing.T) {
		f := newFixture(t)
		aliceID := f.createProfile(t, alice, "alice")
		bobID := f.createProfile(t, bob, "bob")

		txn := f.ledger.Begin()
		postID, err := CreatePost(txn, f.env, hub.PostInput{
			ProfileID:       aliceID,
			ContentURI:      "ipfs://gated",
			CollectModule:   collectAddr,
			ReferenceModule: referenceAddr,
		})
		require.NoError(t, err)
		txn.Commit()

		f.reference.mirrorErr = errors.New("followers only")
		_, err = CreateMirror(f.ledger.Begin(), f.env, hub.MirrorInput{
			ProfileID:        bobID,
			PointedProfileID: aliceID,
			PointedPubID:     postID,
		})
		assert.Error(t, err)
	})
}

func TestResolveRoot(t *testing.T) {
	f := newFixture(t)
	aliceID := f.createProfile(t, alice, "alice")
	bobID := f.createProfile(t, bob, "bob")
	postID := f.post(t, aliceID, "ipfs://post")

	txn := f.ledger.Begin()
	mirrorID, err := CreateMirror(txn, f.env, hub.MirrorInput{
		ProfileID:        bobID,
		PointedProfileID: aliceID,
		PointedPubID:     postID,
	})
	require.NoError(t, err)
	txn.Commit()

	t.Run("root resolves to itself", func(t *testing.T) {
		p, pub, cm, err := ResolveRoot(f.ledger, aliceID, postID)
		require.NoError(t, err)
		assert.Equal(t, aliceID, p)
		assert.Equal(t, postID, pub)
		assert.Equal(t, collectAddr, cm)
	})

	t.Run("mirror resolves to root", func(t *testing.T) {
		p, pub, cm, err := ResolveRoot(f.ledger, bobID, mirrorID)
		require.NoError(t, err)
		assert.Equal(t, aliceID, p)
		assert.Equal(t, postID, pub)
		assert.Equal(t, collectAddr, cm)
	})

	t.Run("missing publication", func(t *testing.T) {
		_, _, _, err := ResolveRoot(f.ledger, aliceID, 99)
		assert.ErrorIs(t, err, hub.ErrPublicationDoesNotExist)
	})
}

func TestSetters(t *testing.T) {
	t.Run("set follow module", func(t *testing.T) {
		f := newFixture(t)
		id := f.createProfile(t, alice, "alice")

		txn := f.ledger.Begin()
		require.NoError(t, SetFollowModule(txn, f.env, id, followAddr, nil))
		txn.Commit()

		p, _ := f.ledger.Profile(id)
		assert.Equal(t, followAddr, p.FollowModule)

		// Clearing with the zero address skips the whitelist
		txn = f.ledger.Begin()
		require.NoError(t, SetFollowModule(txn, f.env, id, common.Address{}, nil))
		txn.Commit()
		p, _ = f.ledger.Profile(id)
		assert.Equal(t, common.Address{}, p.FollowModule)
	})

	t.Run("set dispatcher", func(t *testing.T) {
		f := newFixture(t)
		id := f.createProfile(t, alice, "alice")

		txn := f.ledger.Begin()
		SetDispatcher(txn, id, bob)
		events := txn.Commit()
		require.Len(t, events, 1)
		assert.Equal(t, hub.EventDispatcherSet, events[0].Name)
		assert.Equal(t, bob, f.ledger.Dispatcher(id))
	})

	t.Run("set image URI length check", func(t *testing.T) {
		f := newFixture(t)
		id := f.createProfile(t, alice, "alice")
		err := SetProfileImageURI(f.ledger.Begin(), id, strings.Repeat("x", hub.MaxProfileImageURILength+1))
		assert.ErrorIs(t, err, hub.ErrProfileImageURILengthInvalid)
	})

	t.Run("set default profile requires ownership", func(t *testing.T) {
		f := newFixture(t)
		id := f.createProfile(t, alice, "alice")

		err := SetDefaultProfile(f.ledger.Begin(), bob, id)
		assert.ErrorIs(t, err, hub.ErrNotProfileOwner)

		txn := f.ledger.Begin()
		require.NoError(t, SetDefaultProfile(txn, alice, id))
		txn.Commit()
		assert.Equal(t, id, f.ledger.DefaultProfile(alice))

		// Zero clears without an ownership check
		txn = f.ledger.Begin()
		require.NoError(t, SetDefaultProfile(txn, alice, 0))
		txn.Commit()
		assert.Equal(t, uint64(0), f.ledger.DefaultProfile(alice))
	})
}

func TestTransfer(t *testing.T) {
	f := newFixture(t)
	id := f.createProfile(t, alice, "alice")

	txn := f.ledger.Begin()
	SetDispatcher(txn, id, bob)
	require.NoError(t, SetDefaultProfile(txn, alice, id))
	txn.SetApproved(id, bob)
	txn.Commit()

	txn = f.ledger.Begin()
	Transfer(txn, id, alice, bob)
	txn.Commit()

	assert.Equal(t, bob, f.ledger.Owner(id))
	assert.Equal(t, common.Address{}, f.ledger.Dispatcher(id))
	assert.Equal(t, common.Address{}, f.ledger.Approved(id))
	assert.Equal(t, uint64(0), f.ledger.DefaultProfile(alice))
}

func TestBurn(t *testing.T) {
	f := newFixture(t)
	id := f.createProfile(t, alice, "alice")
	f.post(t, id, "ipfs://post")

	txn := f.ledger.Begin()
	require.NoError(t, Burn(txn, id, alice))
	events := txn.Commit()
	require.Len(t, events, 1)
	assert.Equal(t, hub.EventProfileBurned, events[0].Name)

	assert.Equal(t, common.Address{}, f.ledger.Owner(id))
	assert.Equal(t, uint64(0), f.ledger.ProfileIDByHandle("alice"))

	// Ghost data: the profile and its publications survive
	p, ok := f.ledger.Profile(id)
	require.True(t, ok)
	assert.Equal(t, "alice", p.Handle)
	_, ok = f.ledger.Publication(id, 1)
	assert.True(t, ok)

	// The released handle can be rebound
	f.createProfile(t, bob, "alice")
}
