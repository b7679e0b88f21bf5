package mysql

// Schema is applied by EnsureSchema; a one-shot scraper cannot assume a
// migration step ran before it.
const createReviewsSQL = "CREATE TABLE IF NOT EXISTS reviews (\n" +
	"  app_id              BIGINT NOT NULL,\n" +
	"  source_key          CHAR(40) NOT NULL,\n" +
	"  user_name           TEXT NOT NULL,\n" +
	"  title               TEXT NOT NULL,\n" +
	"  `review`            MEDIUMTEXT NOT NULL,\n" +
	"  is_edited           TINYINT(1) NOT NULL,\n" +
	"  last_update         VARCHAR(64) NOT NULL,\n" +
	"  rating              INT NOT NULL,\n" +
	"  developer_id        BIGINT NULL,\n" +
	"  developer_response  MEDIUMTEXT NULL,\n" +
	"  developer_modified  VARCHAR(64) NULL,\n" +
	"  created_at          TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,\n" +
	"  updated_at          TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,\n" +
	"  PRIMARY KEY (app_id, source_key)\n" +
	") CHARACTER SET utf8mb4"

// Note: `review` is close to reserved territory; keep it quoted everywhere.
const insertReviewsPrefix = "INSERT INTO reviews\n" +
	"  (app_id, source_key, user_name, title, `review`, is_edited, last_update, rating,\n" +
	"   developer_id, developer_response, developer_modified)\n" +
	"VALUES "

const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  is_edited          = VALUES(is_edited),\n" +
	"  last_update        = VALUES(last_update),\n" +
	"  rating             = VALUES(rating),\n" +
	"  developer_id       = VALUES(developer_id),\n" +
	"  developer_response = VALUES(developer_response),\n" +
	"  developer_modified = VALUES(developer_modified)\n"

const countReviewsSQL = `SELECT COUNT(*) FROM reviews WHERE app_id = ?`
