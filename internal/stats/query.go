package stats

// TableBloatSQL estimates per-table bloat from pg_stats and pg_class.
// Each row is (schema, table, size, wasted, unwasted), all sizes in bytes.
//
// Estimation query by PostgreSQL Experts, licensed under the BSD-3-Clause license
// https://github.com/pgexperts/pgx_scripts
const TableBloatSQL = `
WITH constants AS (
	SELECT current_setting('block_size')::numeric AS bs, 23 AS hdr, 8 AS ma
),
columns AS (
	SELECT pg_namespace.nspname AS table_schema,
	       pg_class.relname AS table_name,
	       pg_attribute.attname AS column_name
	  FROM pg_attribute
	  JOIN pg_class ON (pg_class.oid = pg_attribute.attrelid)
	  JOIN pg_namespace ON (pg_namespace.oid = pg_class.relnamespace)
	 WHERE pg_class.relkind = 'r' AND pg_attribute.attnum > 0
	   AND nspname NOT IN ('pg_catalog', 'information_schema', 'pg_toast')
	   AND NOT attisdropped
),
no_stats AS (
	-- tables with columns that have no statistics (e.g. json) cannot be estimated
	SELECT table_schema, table_name
	  FROM columns
	  JOIN pg_stat_user_tables AS psut
	    ON table_schema = psut.schemaname
	   AND table_name = psut.relname
	  LEFT OUTER JOIN pg_stats
	    ON table_schema = pg_stats.schemaname
	   AND table_name = pg_stats.tablename
	   AND column_name = attname
	 WHERE attname IS NULL
	 GROUP BY table_schema, table_name
),
null_headers AS (
	SELECT hdr + 1 + (sum(CASE WHEN null_frac <> 0 THEN 1 ELSE 0 END) / 8) AS nullhdr,
	       SUM((1 - null_frac) * avg_width) AS datawidth,
	       MAX(null_frac) AS maxfracsum,
	       schemaname, tablename, hdr, ma, bs
	  FROM pg_stats CROSS JOIN constants
	  LEFT OUTER JOIN no_stats
	    ON schemaname = no_stats.table_schema
	   AND tablename = no_stats.table_name
	 WHERE schemaname NOT IN ('pg_catalog', 'information_schema')
	   AND no_stats.table_name IS NULL
	   AND EXISTS (SELECT 1 FROM columns
	                WHERE schemaname = columns.table_schema
	                  AND tablename = columns.table_name)
	 GROUP BY schemaname, tablename, hdr, ma, bs
),
data_headers AS (
	SELECT ma, bs, hdr, schemaname, tablename,
	       (datawidth + (hdr + ma - (CASE WHEN hdr % ma = 0 THEN ma ELSE hdr % ma END)))::numeric AS datahdr,
	       (maxfracsum * (nullhdr + ma - (CASE WHEN nullhdr % ma = 0 THEN ma ELSE nullhdr % ma END))) AS nullhdr2
	  FROM null_headers
),
table_estimates AS (
	SELECT schemaname, tablename, bs,
	       relpages * bs AS table_bytes,
	       CEIL((reltuples *
	             (datahdr + nullhdr2 + 4 + ma -
	              (CASE WHEN datahdr % ma = 0 THEN ma ELSE datahdr % ma END))
	             / (bs - 20))) * bs AS expected_bytes,
	       reltoastrelid
	  FROM data_headers
	  JOIN pg_class ON tablename = relname
	  JOIN pg_namespace ON relnamespace = pg_namespace.oid
	   AND schemaname = nspname
	 WHERE pg_class.relkind = 'r'
),
estimates_with_toast AS (
	SELECT schemaname, tablename,
	       table_bytes + (coalesce(toast.relpages, 0) * bs) AS table_bytes,
	       expected_bytes + (ceil(coalesce(toast.reltuples, 0) / 4) * bs) AS expected_bytes
	  FROM table_estimates
	  LEFT OUTER JOIN pg_class AS toast
	    ON table_estimates.reltoastrelid = toast.oid
	   AND toast.relkind = 't'
),
waste AS (
	SELECT schemaname, tablename,
	       GREATEST(table_bytes, 0)::bigint AS size,
	       CASE WHEN expected_bytes > 0 AND table_bytes > 0 AND expected_bytes <= table_bytes
	            THEN (table_bytes - expected_bytes)::bigint
	            ELSE 0::bigint END AS wasted
	  FROM estimates_with_toast
)
SELECT schemaname, tablename, size, wasted, size - wasted AS unwasted
  FROM waste
 ORDER BY schemaname, tablename
`
