package seeds

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	userCount        = 20
	interactionCount = 300
)

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))

	// Truncate existing data before insert
	log.Println("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE recommendations, similarity_edges, index_builds,
		         interactions, user_preferences, items RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	log.Println("[seed] inserting items")
	itemCount, err := seedItems(ctx, pool, rng)
	if err != nil {
		return fmt.Errorf("seed items: %w", err)
	}

	log.Println("[seed] inserting preferences")
	if err := seedPreferences(ctx, pool, rng, userCount); err != nil {
		return fmt.Errorf("seed preferences: %w", err)
	}

	log.Println("[seed] inserting interactions")
	if err := seedInteractions(ctx, pool, rng, itemCount, interactionCount); err != nil {
		return fmt.Errorf("seed interactions: %w", err)
	}

	log.Println("[seed] seeding complete")
	return nil
}

type seedRecipe struct {
	title       string
	ingredients string
	category    string
	difficulty  string
	cookingTime int
}

type seedArticle struct {
	title    string
	body     string
	category string
}

// Ingredient lists stay in Korean so the similarity index works on the same
// text real recipe submissions carry.
var recipes = []seedRecipe{
	{"Kimchi Jjigae", "김치 돼지고기 두부 대파 고춧가루 마늘", "stew", "beginner", 30},
	{"Doenjang Jjigae", "된장 두부 애호박 감자 대파 마늘", "stew", "beginner", 25},
	{"Sundubu Jjigae", "순두부 돼지고기 김치 계란 고춧가루 대파", "stew", "intermediate", 25},
	{"Budae Jjigae", "햄 소시지 김치 라면 두부 베이크드빈 대파", "stew", "beginner", 30},
	{"Galbitang", "소갈비 무 대파 마늘 당면", "soup", "advanced", 120},
	{"Miyeokguk", "미역 소고기 마늘 국간장 참기름", "soup", "beginner", 30},
	{"Samgyetang", "닭 찹쌀 인삼 대추 마늘 대파", "soup", "advanced", 90},
	{"Kongnamul Guk", "콩나물 대파 마늘 고춧가루", "soup", "beginner", 15},
	{"Bibimbap", "밥 소고기 시금치 콩나물 당근 계란 고추장 참기름", "rice", "intermediate", 40},
	{"Kimchi Bokkeumbap", "김치 밥 돼지고기 계란 대파 참기름", "rice", "beginner", 15},
	{"Bulgogi Deopbap", "소고기 양파 당근 간장 설탕 밥", "rice", "beginner", 25},
	{"Yukhoe Bibimbap", "소고기 배 계란 참기름 밥 마늘", "rice", "advanced", 20},
	{"Bulgogi", "소고기 양파 당근 대파 간장 설탕 마늘 참기름", "grill", "intermediate", 35},
	{"Samgyeopsal Gui", "삼겹살 마늘 대파 상추 쌈장", "grill", "beginner", 20},
	{"Galbi Gui", "소갈비 간장 설탕 마늘 배 참기름", "grill", "advanced", 60},
	{"Godeungeo Gui", "고등어 소금 레몬", "grill", "beginner", 20},
	{"Japchae", "당면 소고기 시금치 당근 양파 간장 설탕 참기름", "noodle", "intermediate", 45},
	{"Kalguksu", "밀가루 닭 애호박 감자 대파 마늘", "noodle", "intermediate", 50},
	{"Bibim Naengmyeon", "메밀면 고추장 오이 배 계란 설탕", "noodle", "intermediate", 25},
	{"Jajangmyeon", "중화면 돼지고기 양파 애호박 춘장", "noodle", "intermediate", 40},
	{"Haemul Pajeon", "부침가루 오징어 새우 대파 계란", "pancake", "intermediate", 30},
	{"Kimchi Jeon", "김치 부침가루 대파 고춧가루", "pancake", "beginner", 20},
	{"Gamja Jeon", "감자 소금 식용유", "pancake", "beginner", 25},
	{"Hobak Jeon", "애호박 부침가루 계란 소금", "pancake", "beginner", 15},
	{"Tteokbokki", "떡 어묵 고추장 설탕 대파 마늘", "snack", "beginner", 25},
	{"Gimbap", "밥 김 당근 시금치 단무지 계란 햄", "snack", "intermediate", 40},
	{"Eomuk Tang", "어묵 무 대파 마늘 간장", "snack", "beginner", 20},
	{"Dakgangjeong", "닭 전분 간장 설탕 마늘 물엿", "snack", "intermediate", 35},
	{"Kongnamul Muchim", "콩나물 마늘 대파 참기름 소금", "side", "beginner", 10},
	{"Sigeumchi Namul", "시금치 마늘 참기름 소금 깨", "side", "beginner", 10},
	{"Oi Muchim", "오이 고춧가루 마늘 설탕 식초", "side", "beginner", 10},
	{"Gyeran Jjim", "계란 대파 소금 새우젓", "side", "beginner", 15},
}

var articles = []seedArticle{
	{"Knife Skills for Korean Cooking", "칼 다루는 법 기초 채썰기 깍둑썰기 어슷썰기 연습", "technique"},
	{"How to Make Perfect Rice", "밥 짓기 쌀 씻기 물 조절 뜸 들이기", "technique"},
	{"A Guide to Korean Pantry Staples", "고추장 된장 간장 참기름 고춧가루 보관법", "ingredient"},
	{"Choosing the Right Tofu", "두부 종류 순두부 부침용 찌개용 고르는 법", "ingredient"},
	{"Fermentation Basics at Home", "김치 발효 온도 숙성 기간 보관", "technique"},
	{"Seasonal Vegetables in Spring", "봄나물 냉이 달래 두릅 손질법", "ingredient"},
	{"Stocking a Vegan Korean Kitchen", "채식 다시마 표고버섯 국물 내기 콩고기", "lifestyle"},
	{"Meal Prep for Busy Weeks", "밑반찬 일주일 보관 용기 냉장", "lifestyle"},
}

func seedItems(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand) (int, error) {
	rows := []string{}
	args := []any{}

	for _, rec := range recipes {
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(365))
		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args, "recipe", rec.title, rec.ingredients, rec.category,
			rec.difficulty, rec.cookingTime, createdAt)
	}
	for _, art := range articles {
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(365))
		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args, "article", art.title, art.body, art.category, "", 0, createdAt)
	}

	query := "INSERT INTO items (kind, title, content, category, difficulty, cooking_time, created_at) VALUES " +
		strings.Join(rows, ", ")

	if _, err := pool.Exec(ctx, query, args...); err != nil {
		return 0, err
	}
	return len(recipes) + len(articles), nil
}

func seedPreferences(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, n int) error {
	restrictions := []string{"none", "vegetarian", "vegan", "pescatarian", "gluten_free", "dairy_free"}
	restrictionWeights := []float64{0.6, 0.12, 0.08, 0.08, 0.06, 0.06}
	difficulties := []string{"", "beginner", "intermediate", "advanced"}
	categories := []string{"stew", "soup", "rice", "grill", "noodle", "pancake", "snack", "side"}
	allergySets := [][]string{{}, {}, {}, {"새우"}, {"계란"}, {"계란", "우유"}}

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		restriction := weightedChoice(rng, restrictions, restrictionWeights)
		maxTime := 0
		if rng.Float64() < 0.4 {
			maxTime = []int{20, 30, 45, 60}[rng.Intn(4)]
		}
		difficulty := difficulties[rng.Intn(len(difficulties))]

		favCount := rng.Intn(3) + 1
		favs := make([]string, 0, favCount)
		start := rng.Intn(len(categories))
		for j := 0; j < favCount; j++ {
			favs = append(favs, categories[(start+j)%len(categories)])
		}

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		args = append(args, int64(i+1), restriction, maxTime, difficulty,
			allergySets[rng.Intn(len(allergySets))], favs)
	}

	query := "INSERT INTO user_preferences (user_id, dietary_restriction, max_cooking_time, preferred_difficulty, allergies, favorite_categories) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedInteractions(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, itemCount, n int) error {
	kinds := []string{"view", "save", "cook", "rate"}
	kindWeights := []float64{0.45, 0.2, 0.15, 0.2}

	seen := make(map[[3]any]bool)

	rows := []string{}
	args := []any{}

	for i := 0; i < n; i++ {
		userID := int64(math.Ceil(math.Pow(rng.Float64(), 1.5) * userCount))
		userID = max(1, min(userID, userCount))

		itemID := int64(math.Ceil(math.Pow(rng.Float64(), 1.3) * float64(itemCount)))
		itemID = max(1, min(itemID, int64(itemCount)))

		kind := weightedChoice(rng, kinds, kindWeights)

		key := [3]any{userID, itemID, kind}
		if seen[key] {
			continue
		}
		seen[key] = true

		var rating any
		if kind == "rate" {
			// skew toward favorable ratings like real traffic
			rating = min(5, rng.Intn(4)+2)
		}
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(180))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5))
		args = append(args, userID, itemID, kind, rating, createdAt)
	}

	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO interactions (user_id, item_id, kind, rating, created_at) VALUES " +
		strings.Join(rows, ", ")

	_, err := pool.Exec(ctx, query, args...)
	return err
}

func weightedChoice(rng *rand.Rand, choices []string, weights []float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return choices[i]
		}
	}
	return choices[len(choices)-1]
}
