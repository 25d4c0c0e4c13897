package api

import (
	"github.com/giovaniif/bucket-list/domain/consumer"
	"github.com/giovaniif/bucket-list/domain/item"
)

var seedItems = []item.Item{
	{Id: 1, Name: "Fruit de Lune", Description: "Un fruit juteux qui brille dans l'obscurité, avec un goût sucré et acidulé.", Price: 15.99},
	{Id: 2, Name: "Noix de Rêve", Description: "Des noix croquantes qui stimulent l'imagination, avec une saveur de caramel et de vanille.", Price: 9.50},
	{Id: 3, Name: "Lait de Nuage", Description: "Une boisson légère et mousseuse, infusée de saveurs florales, parfaite pour se détendre.", Price: 7.99},
	{Id: 4, Name: "Pâtisserie Étoilée", Description: "Une délicieuse pâtisserie garnie de crème aux étoiles, qui fond dans la bouche.", Price: 12.50},
	{Id: 5, Name: "Gelée de Tempête", Description: "Une gelée vibrante qui change de couleur, avec un goût épicé et fruité.", Price: 8.99},
	{Id: 6, Name: "Chocolat de l'Inspiration", Description: "Un chocolat riche et crémeux qui stimule la créativité, avec des éclats de menthe.", Price: 10.99},
	{Id: 7, Name: "Thé des Sages", Description: "Un mélange de plantes rares qui favorise la clarté d'esprit et la sérénité.", Price: 6.50},
	{Id: 8, Name: "Gâteau des Rêves", Description: "Un gâteau léger et aérien, garni de crème fouettée et de fruits enchantés.", Price: 14.99},
}

var seedConsumers = []consumer.Consumer{
	{Id: 1, Name: "Alice Dupont", Email: "alice.dupont@example.com"},
	{Id: 2, Name: "Jean Martin", Email: "jean.martin@example.com"},
	{Id: 3, Name: "Sophie Leroy", Email: "sophie.leroy@example.com"},
	{Id: 4, Name: "Pierre Durand", Email: "pierre.durand@example.com"},
	{Id: 5, Name: "Claire Petit", Email: "claire.petit@example.com"},
}

type itemSaver interface {
	Save(it item.Item)
}

type consumerSaver interface {
	Save(c consumer.Consumer)
}

func SeedItems(repository itemSaver) {
	for _, it := range seedItems {
		repository.Save(it)
	}
}

func SeedConsumers(repository consumerSaver) {
	for _, c := range seedConsumers {
		repository.Save(c)
	}
}
