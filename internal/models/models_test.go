package models

import "testing"

func TestAlbumArtistName(t *testing.T) {
	t.Run("prefers the artist field", func(t *testing.T) {
		album := Album{Artist: "Miles Davis", Artists: []string{"Someone Else"}}
		if got := album.ArtistName(); got != "Miles Davis" {
			t.Errorf("expected Miles Davis, got %q", got)
		}
	})

	t.Run("joins the artists list", func(t *testing.T) {
		album := Album{Artists: []string{"Miles Davis", "John Coltrane"}}
		if got := album.ArtistName(); got != "Miles Davis, John Coltrane" {
			t.Errorf("expected joined names, got %q", got)
		}
	})

	t.Run("falls back for unknown artists", func(t *testing.T) {
		if got := (Album{}).ArtistName(); got != "Unknown Artist" {
			t.Errorf("expected Unknown Artist, got %q", got)
		}
	})
}

func TestUserFollows(t *testing.T) {
	user := &User{Following: []string{"p1", "p2"}}

	if !user.Follows("p1") {
		t.Error("expected user to follow p1")
	}
	if user.Follows("p3") {
		t.Error("expected user not to follow p3")
	}
}

func TestCommentMembership(t *testing.T) {
	comment := Comment{LikedBy: []string{"u1"}, DislikedBy: []string{"u2"}}

	if !comment.IsLikedBy("u1") || comment.IsLikedBy("u2") {
		t.Error("unexpected liked_by membership")
	}
	if !comment.IsDislikedBy("u2") || comment.IsDislikedBy("u1") {
		t.Error("unexpected disliked_by membership")
	}
}

func TestSortCommentsByLikes(t *testing.T) {
	comments := []Comment{
		{ID: "c1", Likes: 1},
		{ID: "c2", Likes: 5},
		{ID: "c3", Likes: 3},
	}

	sorted := SortCommentsByLikes(comments)

	if sorted[0].ID != "c2" || sorted[1].ID != "c3" || sorted[2].ID != "c1" {
		t.Errorf("unexpected order: %+v", sorted)
	}
	// Input is left untouched.
	if comments[0].ID != "c1" {
		t.Error("expected the input slice to be unchanged")
	}
}

func TestMergeComments(t *testing.T) {
	t.Run("replaces matching IDs and appends new ones", func(t *testing.T) {
		existing := []Comment{
			{ID: "c1", Likes: 2},
			{ID: "c2", Likes: 1},
		}
		incoming := []Comment{
			{ID: "c1", Likes: 9}, // refreshed after a like
			{ID: "c3", Likes: 4},
		}

		merged := MergeComments(existing, incoming)

		if len(merged) != 3 {
			t.Fatalf("expected 3 comments, got %d", len(merged))
		}
		if merged[0].ID != "c1" || merged[0].Likes != 9 {
			t.Errorf("expected refreshed c1 first, got %+v", merged[0])
		}
		if merged[1].ID != "c3" {
			t.Errorf("expected c3 second, got %+v", merged[1])
		}
	})

	t.Run("merging into an empty list", func(t *testing.T) {
		merged := MergeComments(nil, []Comment{{ID: "c1"}})
		if len(merged) != 1 || merged[0].ID != "c1" {
			t.Errorf("unexpected merge result: %+v", merged)
		}
	})
}

func TestRemoveComment(t *testing.T) {
	comments := []Comment{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}}

	out := RemoveComment(comments, "c2")
	if len(out) != 2 || out[0].ID != "c1" || out[1].ID != "c3" {
		t.Errorf("unexpected result: %+v", out)
	}

	// Removing a missing ID is a no-op.
	out = RemoveComment(comments, "missing")
	if len(out) != 3 {
		t.Errorf("expected all comments kept, got %+v", out)
	}
}
