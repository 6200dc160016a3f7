package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-vinted/models"
)

var userColumns = []string{
	"id", "email", "username", "password_salt", "password_hash", "token",
	"avatar_url", "avatar_public_id", "newsletter", "created_at",
}

var offerColumns = []string{
	"o.id", "o.owner_id", "o.product_name", "o.product_description", "o.product_price",
	"o.product_details", "o.image_url", "o.image_public_id", "o.version",
	"o.created_at", "o.updated_at",
	"u.username", "u.avatar_url", "u.avatar_public_id",
}

// likeEscaper escapes the LIKE metacharacters of a user supplied substring.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (db *DB) insertUserQuery(u models.User) sq.InsertBuilder {
	avatar := imageOrEmpty(u.Avatar)
	return db.builder.Insert("users").
		Columns(userColumns...).
		Values(u.ID, u.Email, u.Username, u.PasswordSalt, u.PasswordHash, u.Token,
			avatar.URL, avatar.PublicID, u.Newsletter, u.CreatedAt)
}

func (db *DB) selectUserQuery(where sq.Eq) sq.SelectBuilder {
	return db.builder.Select(userColumns...).From("users").Where(where).Limit(1)
}

func (db *DB) existsUserQuery(email string) sq.SelectBuilder {
	return db.builder.Select("COUNT(*)").From("users").Where(sq.Eq{"email": email})
}

func (db *DB) updateAvatarQuery(userID string, previous, avatar *models.Image) sq.UpdateBuilder {
	prev := imageOrEmpty(previous)
	next := imageOrEmpty(avatar)
	return db.builder.Update("users").
		Set("avatar_url", next.URL).
		Set("avatar_public_id", next.PublicID).
		Where(sq.Eq{"id": userID, "avatar_public_id": prev.PublicID})
}

func (db *DB) insertOfferQuery(o models.Offer, details string) sq.InsertBuilder {
	image := imageOrEmpty(o.Image)
	return db.builder.Insert("offers").
		Columns("id", "owner_id", "product_name", "product_description", "product_price",
			"product_details", "image_url", "image_public_id", "version", "created_at", "updated_at").
		Values(o.ID, o.OwnerID, o.Title, o.Description, o.Price,
			details, image.URL, image.PublicID, o.Version, o.CreatedAt, o.UpdatedAt)
}

func (db *DB) updateOfferQuery(o models.Offer, details string) sq.UpdateBuilder {
	image := imageOrEmpty(o.Image)
	return db.builder.Update("offers").
		Set("product_name", o.Title).
		Set("product_description", o.Description).
		Set("product_price", o.Price).
		Set("product_details", details).
		Set("image_url", image.URL).
		Set("image_public_id", image.PublicID).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", o.UpdatedAt).
		Where(sq.Eq{"id": o.ID, "version": o.Version})
}

func (db *DB) deleteOfferQuery(id string) sq.DeleteBuilder {
	return db.builder.Delete("offers").Where(sq.Eq{"id": id})
}

func (db *DB) selectOffersBase() sq.SelectBuilder {
	return db.builder.Select(offerColumns...).
		From("offers o").
		Join("users u ON u.id = o.owner_id")
}

func (db *DB) selectOfferByIDQuery(id string) sq.SelectBuilder {
	return db.selectOffersBase().Where(sq.Eq{"o.id": id}).Limit(1)
}

func (db *DB) countOffersQuery(f models.OfferFilter) sq.SelectBuilder {
	return db.builder.Select("COUNT(*)").From("offers o").Where(offerFilter(f))
}

// searchOffersQuery selects one page of offers. Ties, and unsorted results,
// are ordered by insertion.
func (db *DB) searchOffersQuery(q models.OfferQuery) sq.SelectBuilder {
	query := db.selectOffersBase().Where(offerFilter(q.OfferFilter))

	switch q.Sort {
	case models.SortPriceAsc:
		query = query.OrderBy("o.product_price ASC")
	case models.SortPriceDesc:
		query = query.OrderBy("o.product_price DESC")
	}

	return query.
		OrderBy("o.created_at ASC", "o.id ASC").
		Limit(q.Limit).
		Offset(q.Offset)
}

func offerFilter(f models.OfferFilter) sq.And {
	conds := sq.And{sq.GtOrEq{"o.product_price": f.PriceMin}}

	if f.PriceMax != nil {
		conds = append(conds, sq.LtOrEq{"o.product_price": *f.PriceMax})
	}
	if f.Title != "" {
		pattern := "%" + likeEscaper.Replace(f.Title) + "%"
		conds = append(conds, sq.Expr(`LOWER(o.product_name) LIKE LOWER(?) ESCAPE '\'`, pattern))
	}

	return conds
}

func imageOrEmpty(i *models.Image) models.Image {
	if i == nil {
		return models.Image{}
	}
	return *i
}

func imageOrNil(url, publicID string) *models.Image {
	if publicID == "" && url == "" {
		return nil
	}
	return &models.Image{URL: url, PublicID: publicID}
}
