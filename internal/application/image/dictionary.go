package image

import (
	"regexp"
	"strings"
)

// replacement is one dictionary entry. Entries are applied in order,
// so compound dishes must come before the single words they contain
// (kartoffelsalat before kartoffel and salat).
type replacement struct {
	german  string
	english string
}

var foodTranslations = []replacement{
	// Compound dishes first
	{"kartoffelauflauf", "potato casserole"},
	{"nudelauflauf", "pasta casserole baked"},
	{"gemüseauflauf", "vegetable casserole"},
	{"kartoffelsalat", "potato salad"},
	{"kartoffelpuffer", "potato fritters pancakes"},
	{"kartoffelsuppe", "potato soup"},
	{"kartoffelbrei", "mashed potatoes"},
	{"bratkartoffeln", "fried potatoes"},
	{"pellkartoffeln", "boiled potatoes"},
	{"schwarzwälder", "black forest"},
	{"schweinebraten", "roast pork"},
	{"rinderbraten", "roast beef"},
	{"sauerbraten", "marinated roast beef"},
	{"schweinefleisch", "pork meat"},
	{"rindfleisch", "beef meat"},
	{"hackfleisch", "ground meat minced"},
	{"hühnerfleisch", "chicken meat"},
	{"putenfleisch", "turkey meat"},
	{"lammfleisch", "lamb meat"},
	{"fleischbällchen", "meatballs"},
	{"frikadellen", "meatballs german"},
	{"königsberger", "koenigsberg meatballs"},
	{"käsekuchen", "cheesecake"},
	{"apfelkuchen", "apple cake pie"},
	{"pflaumenkuchen", "plum cake"},
	{"streuselkuchen", "crumble cake"},
	{"bienenstich", "bee sting cake"},
	{"apfelstrudel", "apple strudel pastry"},
	{"kaiserschmarrn", "shredded pancake austrian"},
	{"pfannkuchen", "pancakes german"},
	{"reibekuchen", "potato pancakes"},
	{"milchreis", "rice pudding"},
	{"grießbrei", "semolina pudding"},
	{"leberkäse", "meatloaf bavarian"},
	{"weißwurst", "white sausage bavarian"},
	{"currywurst", "curry sausage"},
	{"bratwurst", "grilled sausage"},
	{"bockwurst", "boiled sausage"},
	{"knackwurst", "crackling sausage"},
	{"blutwurst", "blood sausage"},
	{"leberwurst", "liver sausage pate"},
	{"sauerkraut", "sauerkraut fermented cabbage"},
	{"rotkohl", "red cabbage"},
	{"grünkohl", "kale green"},
	{"rosenkohl", "brussels sprouts"},
	{"blumenkohl", "cauliflower"},
	{"weißkohl", "white cabbage"},
	{"wirsing", "savoy cabbage"},
	{"kohlrabi", "kohlrabi"},
	{"spargel", "asparagus"},
	{"erbsensuppe", "pea soup"},
	{"linsensuppe", "lentil soup"},
	{"gulaschsuppe", "goulash soup"},
	{"hühnersuppe", "chicken soup"},
	{"tomatensuppe", "tomato soup"},
	{"zwiebelsuppe", "onion soup"},
	{"semmelknödel", "bread dumplings"},
	{"kartoffelknödel", "potato dumplings"},
	{"spätzle", "spaetzle german egg noodles"},
	{"maultaschen", "german ravioli dumplings"},
	{"schupfnudeln", "finger shaped potato noodles"},
	{"auflauf", "casserole baked"},
	{"eintopf", "stew one pot"},
	{"braten", "roast"},
	{"schnitzel", "schnitzel breaded cutlet"},
	{"gulasch", "goulash stew"},
	{"roulade", "roulade rolled meat"},
	{"frikadelle", "meatball"},
	{"bulette", "meatball"},
	{"knödel", "dumpling"},
	{"kloß", "dumpling"},
	{"klöße", "dumplings"},
	// Poultry and meat
	{"hähnchen", "chicken"},
	{"hühnchen", "chicken"},
	{"huhn", "chicken"},
	{"pute", "turkey"},
	{"ente", "duck"},
	{"gans", "goose"},
	{"rind", "beef"},
	{"schwein", "pork"},
	{"lamm", "lamb"},
	{"kalb", "veal"},
	{"wild", "game venison"},
	{"hirsch", "deer venison"},
	{"hase", "rabbit"},
	{"kaninchen", "rabbit"},
	// Fish and seafood
	{"lachs", "salmon"},
	{"forelle", "trout"},
	{"kabeljau", "cod"},
	{"thunfisch", "tuna"},
	{"hering", "herring"},
	{"makrele", "mackerel"},
	{"garnelen", "shrimp prawns"},
	{"krabben", "crab shrimp"},
	{"muscheln", "mussels"},
	{"tintenfisch", "squid calamari"},
	{"fisch", "fish"},
	{"fleisch", "meat"},
	{"wurst", "sausage"},
	{"schinken", "ham"},
	{"speck", "bacon"},
	{"ei", "egg"},
	{"eier", "eggs"},
	// Vegetables
	{"kartoffel", "potato"},
	{"kartoffeln", "potatoes"},
	{"tomate", "tomato"},
	{"tomaten", "tomatoes"},
	{"zwiebel", "onion"},
	{"zwiebeln", "onions"},
	{"knoblauch", "garlic"},
	{"paprika", "bell pepper"},
	{"gurke", "cucumber"},
	{"karotte", "carrot"},
	{"möhre", "carrot"},
	{"möhren", "carrots"},
	{"zucchini", "zucchini"},
	{"aubergine", "eggplant"},
	{"brokkoli", "broccoli"},
	{"spinat", "spinach"},
	{"champignon", "mushroom"},
	{"pilz", "mushroom"},
	{"pilze", "mushrooms"},
	{"bohnen", "beans"},
	{"erbsen", "peas"},
	{"linsen", "lentils"},
	{"mais", "corn"},
	{"kürbis", "pumpkin squash"},
	{"sellerie", "celery"},
	{"lauch", "leek"},
	{"porree", "leek"},
	{"fenchel", "fennel"},
	{"rote bete", "beetroot"},
	{"radieschen", "radish"},
	{"rettich", "radish daikon"},
	{"gemüse", "vegetables"},
	{"salat", "salad lettuce"},
	// Staples and dairy
	{"nudeln", "pasta noodles"},
	{"spaghetti", "spaghetti"},
	{"reis", "rice"},
	{"brot", "bread"},
	{"brötchen", "bread roll"},
	{"semmel", "bread roll"},
	{"mehl", "flour"},
	{"grieß", "semolina"},
	{"haferflocken", "oatmeal oats"},
	{"käse", "cheese"},
	{"milch", "milk"},
	{"sahne", "cream"},
	{"butter", "butter"},
	{"joghurt", "yogurt"},
	{"quark", "quark cottage cheese"},
	// Fruit
	{"apfel", "apple"},
	{"birne", "pear"},
	{"orange", "orange"},
	{"zitrone", "lemon"},
	{"erdbeere", "strawberry"},
	{"himbeere", "raspberry"},
	{"heidelbeere", "blueberry"},
	{"kirsche", "cherry"},
	{"pflaume", "plum"},
	{"traube", "grape"},
	{"banane", "banana"},
	{"obst", "fruit"},
	// Preparation words
	{"gebraten", "fried pan-fried"},
	{"gegrillt", "grilled bbq"},
	{"gebacken", "baked oven"},
	{"gekocht", "boiled cooked"},
	{"gedünstet", "steamed"},
	{"geschmort", "braised stewed"},
	{"überbacken", "gratinated baked cheese"},
	{"gefüllt", "stuffed filled"},
	{"paniert", "breaded"},
	{"mariniert", "marinated"},
	{"geräuchert", "smoked"},
	{"frisch", "fresh"},
	{"hausgemacht", "homemade"},
	{"klassisch", "classic traditional"},
	{"cremig", "creamy"},
	{"knusprig", "crispy crunchy"},
	{"würzig", "spicy seasoned"},
	{"süß", "sweet"},
	{"sauer", "sour"},
	{"scharf", "spicy hot"},
	// Sauces and condiments
	{"soße", "sauce gravy"},
	{"sauce", "sauce"},
	{"bratensoße", "gravy"},
	{"tomatensoße", "tomato sauce"},
	{"rahmsoße", "cream sauce"},
	{"senf", "mustard"},
	{"ketchup", "ketchup"},
	{"mayonnaise", "mayonnaise"},
	{"essig", "vinegar"},
	{"öl", "oil"},
	// Courses
	{"suppe", "soup"},
	{"vorspeise", "appetizer starter"},
	{"hauptgericht", "main course"},
	{"beilage", "side dish"},
	{"nachtisch", "dessert"},
	{"dessert", "dessert"},
	{"kuchen", "cake"},
	{"torte", "cake torte"},
	{"gebäck", "pastry"},
	{"keks", "cookie biscuit"},
	{"plätzchen", "cookies"},
	// Connectors
	{"mit", "with"},
	{"und", "and"},
	{"oder", "or"},
	{"nach", "style"},
	{"art", "style"},
	{"oma", "grandma traditional"},
	{"mama", "mom homestyle"},
}

var (
	nonLetterRe   = regexp.MustCompile(`[^a-zäöüß\s]`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	replacementRe = map[string]*regexp.Regexp{}
)

func init() {
	for _, r := range foodTranslations {
		replacementRe[r.german] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(r.german))
	}
}

// TranslateDishName maps a German dish name to an English photo search
// query using the static dictionary. The result always ends in
// "food delicious" to bias the search towards plated dishes.
func TranslateDishName(name string) string {
	query := strings.ToLower(name)
	query = nonLetterRe.ReplaceAllString(query, " ")
	query = strings.TrimSpace(whitespaceRe.ReplaceAllString(query, " "))

	for _, r := range foodTranslations {
		query = replacementRe[r.german].ReplaceAllString(query, r.english)
	}

	query = strings.TrimSpace(whitespaceRe.ReplaceAllString(query, " "))
	return query + " food delicious"
}
