package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// psql builds statements with Postgres placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// InsertProductTree inserts a product with its sizes, groups and values in a
// single transaction.
func InsertProductTree(ctx context.Context, db *sql.DB, p Product) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = psql.Insert("products").
		SetMap(map[string]interface{}{
			"id":               p.ID,
			"slug":             p.Slug,
			"name":             p.Name,
			"team":             p.Team,
			"base_price_cents": p.BasePriceCents,
			"kids_delta_cents": p.KidsDeltaCents,
			"images":           strings.Join(p.Images, ","),
		}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("insert product %s: %w", p.Slug, err)
	}

	insertSizes := func(category SizeCategory, sizes []SizeStock) error {
		for _, s := range sizes {
			_, err := psql.Insert("product_sizes").
				Columns("product_id", "category", "size", "stock").
				Values(p.ID, string(category), s.Size, s.Stock).
				RunWith(tx).
				ExecContext(ctx)
			if err != nil {
				return fmt.Errorf("insert size %s/%s: %w", category, s.Size, err)
			}
		}
		return nil
	}
	if err := insertSizes(SizeAdult, p.Sizes); err != nil {
		return err
	}
	if err := insertSizes(SizeKids, p.KidsSizes); err != nil {
		return err
	}

	for _, g := range p.Groups {
		_, err := psql.Insert("option_groups").
			SetMap(map[string]interface{}{
				"id":         g.ID,
				"product_id": p.ID,
				"key":        g.Key,
				"label":      g.Label,
				"type":       string(g.Type),
				"required":   g.Required,
			}).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("insert group %s: %w", g.Key, err)
		}
		for _, v := range g.Values {
			_, err := psql.Insert("option_values").
				SetMap(map[string]interface{}{
					"id":                v.ID,
					"group_id":          g.ID,
					"code":              v.Code,
					"label":             v.Label,
					"price_delta_cents": v.DeltaCents,
				}).
				RunWith(tx).
				ExecContext(ctx)
			if err != nil {
				return fmt.Errorf("insert value %s/%s: %w", g.Key, v.Code, err)
			}
		}
	}

	return tx.Commit()
}

// DeleteProductTree removes a product and its dependent rows. The whole
// sequence runs in one transaction so a failure cannot leave orphans.
func DeleteProductTree(ctx context.Context, db *sql.DB, productID string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM option_values WHERE group_id IN (SELECT id FROM option_groups WHERE product_id = $1)`,
		productID); err != nil {
		return fmt.Errorf("delete option values: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM option_groups WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete option groups: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM product_sizes WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete sizes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, productID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return tx.Commit()
}

// GetProductBySlug loads a product with its sizes, groups and values.
func GetProductBySlug(ctx context.Context, db *sql.DB, slug string) (*Product, error) {
	return getProductWhere(ctx, db, squirrel.Eq{"slug": slug})
}

// GetProductByID is the configurator/cart lookup.
func GetProductByID(ctx context.Context, db *sql.DB, id string) (*Product, error) {
	return getProductWhere(ctx, db, squirrel.Eq{"id": id})
}

func getProductWhere(ctx context.Context, db *sql.DB, where squirrel.Eq) (*Product, error) {
	row := psql.Select("id", "slug", "name", "team", "base_price_cents", "kids_delta_cents", "images", "created_at").
		From("products").
		Where(where).
		RunWith(db).
		QueryRowContext(ctx)

	var p Product
	var images string
	if err := row.Scan(&p.ID, &p.Slug, &p.Name, &p.Team, &p.BasePriceCents, &p.KidsDeltaCents, &images, &p.CreatedAt); err != nil {
		return nil, err
	}
	if images != "" {
		p.Images = strings.Split(images, ",")
	}

	sizeRows, err := psql.Select("category", "size", "stock").
		From("product_sizes").
		Where(squirrel.Eq{"product_id": p.ID}).
		OrderBy("size").
		RunWith(db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query sizes: %w", err)
	}
	defer sizeRows.Close()
	for sizeRows.Next() {
		var category string
		var s SizeStock
		if err := sizeRows.Scan(&category, &s.Size, &s.Stock); err != nil {
			return nil, err
		}
		if category == string(SizeKids) {
			p.KidsSizes = append(p.KidsSizes, s)
		} else {
			p.Sizes = append(p.Sizes, s)
		}
	}
	if err := sizeRows.Err(); err != nil {
		return nil, err
	}

	groupRows, err := psql.Select("id", "key", "label", "type", "required").
		From("option_groups").
		Where(squirrel.Eq{"product_id": p.ID}).
		OrderBy("key").
		RunWith(db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer groupRows.Close()
	for groupRows.Next() {
		var g OptionGroup
		var typ string
		if err := groupRows.Scan(&g.ID, &g.Key, &g.Label, &typ, &g.Required); err != nil {
			return nil, err
		}
		g.Type = GroupType(typ)
		p.Groups = append(p.Groups, g)
	}
	if err := groupRows.Err(); err != nil {
		return nil, err
	}

	for i := range p.Groups {
		valueRows, err := psql.Select("id", "code", "label", "price_delta_cents").
			From("option_values").
			Where(squirrel.Eq{"group_id": p.Groups[i].ID}).
			OrderBy("code").
			RunWith(db).
			QueryContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("query values: %w", err)
		}
		for valueRows.Next() {
			var v OptionValue
			if err := valueRows.Scan(&v.ID, &v.Code, &v.Label, &v.DeltaCents); err != nil {
				valueRows.Close()
				return nil, err
			}
			p.Groups[i].Values = append(p.Groups[i].Values, v)
		}
		valueRows.Close()
		if err := valueRows.Err(); err != nil {
			return nil, err
		}
	}

	return &p, nil
}

// ProductListOptions filters and orders the category listing query.
type ProductListOptions struct {
	Query  string // matched against name and team
	Sort   string // "price-asc", "price-desc", "newest", default name
	Limit  int
	Offset int
}

// ListProducts returns products for category pages. Club filtering happens
// in Go on top of this via the normalizer; the query only narrows by term.
func ListProducts(ctx context.Context, db *sql.DB, opts ProductListOptions) ([]Product, error) {
	q := psql.Select("id", "slug", "name", "team", "base_price_cents", "kids_delta_cents", "images", "created_at").
		From("products")

	if opts.Query != "" {
		like := "%" + opts.Query + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": like},
			squirrel.ILike{"team": like},
		})
	}
	switch opts.Sort {
	case "price-asc":
		q = q.OrderBy("base_price_cents ASC")
	case "price-desc":
		q = q.OrderBy("base_price_cents DESC")
	case "newest":
		q = q.OrderBy("created_at DESC")
	default:
		q = q.OrderBy("name ASC")
	}
	if opts.Limit > 0 {
		q = q.Limit(uint64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Offset(uint64(opts.Offset))
	}

	rows, err := q.RunWith(db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		var images string
		if err := rows.Scan(&p.ID, &p.Slug, &p.Name, &p.Team, &p.BasePriceCents, &p.KidsDeltaCents, &images, &p.CreatedAt); err != nil {
			return nil, err
		}
		if images != "" {
			p.Images = strings.Split(images, ",")
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// InsertSubscriber adds a newsletter subscriber with a fresh unsubscribe
// token. Re-subscribing an existing address clears its unsubscribed_at but
// keeps the original token stable.
func InsertSubscriber(ctx context.Context, db *sql.DB, email string) (*Subscriber, error) {
	sub := &Subscriber{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Token:        uuid.NewString(),
		SubscribedAt: time.Now(),
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO subscribers (id, email, token, subscribed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET unsubscribed_at = NULL`,
		sub.ID, sub.Email, sub.Token, sub.SubscribedAt)
	if err != nil {
		return nil, fmt.Errorf("insert subscriber: %w", err)
	}
	row := psql.Select("id", "token").From("subscribers").
		Where(squirrel.Eq{"email": sub.Email}).
		RunWith(db).
		QueryRowContext(ctx)
	if err := row.Scan(&sub.ID, &sub.Token); err != nil {
		return nil, err
	}
	return sub, nil
}

// ActiveSubscribers returns all subscribers that have not unsubscribed.
func ActiveSubscribers(ctx context.Context, db *sql.DB) ([]Subscriber, error) {
	rows, err := psql.Select("id", "email", "token", "subscribed_at").
		From("subscribers").
		Where("unsubscribed_at IS NULL").
		OrderBy("subscribed_at").
		RunWith(db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query subscribers: %w", err)
	}
	defer rows.Close()

	var subs []Subscriber
	for rows.Next() {
		var s Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.Token, &s.SubscribedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// UnsubscribeByToken marks a subscriber as unsubscribed. Unknown tokens are
// an error so the page can say so.
func UnsubscribeByToken(ctx context.Context, db *sql.DB, token string) error {
	res, err := psql.Update("subscribers").
		Set("unsubscribed_at", time.Now()).
		Where(squirrel.Eq{"token": token}).
		RunWith(db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting affected rows: %w", err)
	}
	if affected != 1 {
		return fmt.Errorf("unknown unsubscribe token")
	}
	return nil
}

// InsertCampaign creates a campaign row in DRAFT.
func InsertCampaign(ctx context.Context, db *sql.DB, subject, style string) (*Campaign, error) {
	c := &Campaign{
		ID:        uuid.NewString(),
		Subject:   subject,
		Style:     style,
		Status:    CampaignDraft,
		CreatedAt: time.Now(),
	}
	_, err := psql.Insert("campaigns").
		SetMap(map[string]interface{}{
			"id":         c.ID,
			"subject":    c.Subject,
			"style":      c.Style,
			"status":     c.Status,
			"created_at": c.CreatedAt,
		}).
		RunWith(db).
		ExecContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("insert campaign: %w", err)
	}
	return c, nil
}

// UpdateCampaignStatus moves a campaign through DRAFT→SENDING→{SENT,FAILED}
// and records the batch counts.
func UpdateCampaignStatus(ctx context.Context, db *sql.DB, id, status string, sent, failed, total int) error {
	_, err := psql.Update("campaigns").
		SetMap(map[string]interface{}{
			"status":       status,
			"sent_count":   sent,
			"failed_count": failed,
			"total":        total,
		}).
		Where(squirrel.Eq{"id": id}).
		RunWith(db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	return nil
}

// InsertSendLog records one per-recipient outcome.
func InsertSendLog(ctx context.Context, db *sql.DB, campaignID, email string, ok bool, reason string) error {
	_, err := psql.Insert("send_logs").
		SetMap(map[string]interface{}{
			"id":          uuid.NewString(),
			"campaign_id": campaignID,
			"email":       email,
			"ok":          ok,
			"reason":      reason,
		}).
		RunWith(db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("insert send log: %w", err)
	}
	return nil
}

// InsertOrder persists an order with its items in one transaction.
func InsertOrder(ctx context.Context, db *sql.DB, order Order) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = psql.Insert("orders").
		SetMap(map[string]interface{}{
			"id":          order.ID,
			"total_cents": order.TotalCents,
			"status":      order.Status,
			"created_at":  order.CreatedAt,
		}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		printName, printNumber := "", ""
		if item.Personalization != nil {
			printName = item.Personalization.Name
			printNumber = item.Personalization.Number
		}
		_, err := psql.Insert("order_items").
			SetMap(map[string]interface{}{
				"order_id":         order.ID,
				"product_id":       item.ProductID,
				"name":             item.Name,
				"unit_price_cents": item.UnitPriceCents,
				"qty":              item.Qty,
				"options":          item.Options,
				"print_name":       printName,
				"print_number":     printNumber,
			}).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return tx.Commit()
}

// GetAccount loads one account by id.
func GetAccount(ctx context.Context, db *sql.DB, id string) (*Account, error) {
	row := psql.Select("id", "email", "name", "image_url", "password_hash").
		From("accounts").
		Where(squirrel.Eq{"id": id}).
		RunWith(db).
		QueryRowContext(ctx)
	var a Account
	if err := row.Scan(&a.ID, &a.Email, &a.Name, &a.ImageURL, &a.PasswordHash); err != nil {
		return nil, err
	}
	return &a, nil
}

// AccountChangeSet carries the profile fields a PATCH may update.
type AccountChangeSet struct {
	Name     *string
	ImageURL *string
}

func (cs AccountChangeSet) toMap() map[string]interface{} {
	m := map[string]interface{}{}
	if cs.Name != nil {
		m["name"] = *cs.Name
	}
	if cs.ImageURL != nil {
		m["image_url"] = *cs.ImageURL
	}
	return m
}

// UpdateAccountProfile applies a change set to one account.
func UpdateAccountProfile(ctx context.Context, db *sql.DB, id string, cs AccountChangeSet) error {
	m := cs.toMap()
	if len(m) == 0 {
		return nil
	}
	res, err := psql.Update("accounts").
		SetMap(m).
		Where(squirrel.Eq{"id": id}).
		RunWith(db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("executing update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting affected rows: %w", err)
	}
	if affected != 1 {
		return fmt.Errorf("update affected %d rows, but expected exactly 1", affected)
	}
	return nil
}

// UpdateAccountPassword stores a new password hash.
func UpdateAccountPassword(ctx context.Context, db *sql.DB, id, hash string) error {
	_, err := psql.Update("accounts").
		Set("password_hash", hash).
		Where(squirrel.Eq{"id": id}).
		RunWith(db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
